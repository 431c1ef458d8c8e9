package core

import "strconv"

// Transition maps an event and the current model to the next model and
// the requests to issue. It is pure and total: every event yields a
// valid next state, failures only ever land in Model.Err, and nothing
// here performs IO or reads the clock.
func Transition(ev Event, m Model) (Model, []Command) {
	switch ev := ev.(type) {
	case TimeTick:
		m.CurrentTime = ev.Time

		return m, nil

	case FetchRecords:
		m.Pager = m.Pager.Reset()
		m.Err = ""

		return m, []Command{m.listCommand()}

	case FetchNextRecords:
		m.Err = ""

		if m.Pager.HasNext() {
			return m, []Command{FetchNextPage{URL: m.Pager.NextPage}}
		}

		return m, nil

	case RecordFetched:
		if ev.Err != nil {
			m.Err = ev.Err.Error()

			return m, nil
		}

		m.Form = RecordToForm(ev.Record)
		m.Err = ""

		return m, nil

	case RecordsFetched:
		if ev.Err != nil {
			m.Err = ev.Err.Error()

			return m, nil
		}

		m.Pager = m.Pager.Merge(ev.Page)

		return m, nil

	case RecordCreated:
		if ev.Err != nil {
			m.Err = ev.Err.Error()

			return m, nil
		}

		m.Form = FormData{}

		return m, []Command{m.listCommand()}

	case StartEdit:
		return m, []Command{FetchRecord{ID: ev.ID}}

	case RecordEdited:
		if ev.Err != nil {
			m.Err = ev.Err.Error()

			return m, nil
		}

		return m, []Command{m.listCommand()}

	case StartDelete:
		return m, []Command{DeleteRecord{ID: ev.ID}}

	case RecordDeleted:
		if ev.Err != nil {
			m.Err = ev.Err.Error()

			return m, nil
		}

		m.Pager = m.Pager.RemoveByID(ev.Record.ID)
		m.Err = ""

		return m, nil

	case EditFormTitle:
		m.Form.Title = ev.Title
		m.Pager = liveReflect(m.Pager, m.Form)

		return m, nil

	case EditFormDescription:
		m.Form.Description = ev.Description
		m.Pager = liveReflect(m.Pager, m.Form)

		return m, nil

	case Submit:
		cmd := submitCommand(m.Form)
		m.Form = FormData{}

		return m, []Command{cmd}

	case ChangeSortColumn:
		m.Sort = NextSort(m.Sort, ev.Column)

		return m, []Command{m.listCommand()}

	case SetLimitText:
		if n, err := strconv.Atoi(ev.Text); err == nil {
			m.Limit = &n
		} else {
			m.Limit = nil
		}

		return m, nil

	case ApplyLimit:
		return m, []Command{m.listCommand()}
	}

	return m, nil
}

// listCommand builds the listing request for the active sort and limit.
func (m Model) listCommand() Command {
	return FetchList{
		SortKeys: []string{m.Sort.Key()},
		Limit:    m.Limit,
	}
}

// submitCommand routes a draft to create or update. The caller resets
// the form immediately; the optimistic reset is not rolled back when
// the request later fails.
func submitCommand(form FormData) Command {
	if form.ID == nil {
		return CreateRecord{Body: FormBody(form)}
	}

	return UpdateRecord{ID: *form.ID, Body: FormBody(form)}
}
