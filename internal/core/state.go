package core

import (
	"time"

	"github.com/inovacc/kollect/internal/kinto"
)

// Sort columns known to the record schema.
const (
	ColumnTitle        = "title"
	ColumnDescription  = "description"
	ColumnLastModified = "last_modified"
)

// DefaultLimit is the page size applied to fresh models.
const DefaultLimit = 5

// Direction of a sort.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// Sort selects the active remote query ordering. Exactly one sort is
// active at a time.
type Sort struct {
	Column string
	Dir    Direction
}

// Asc returns an ascending sort on a column.
func Asc(column string) Sort {
	return Sort{Column: column, Dir: Ascending}
}

// Desc returns a descending sort on a column.
func Desc(column string) Sort {
	return Sort{Column: column, Dir: Descending}
}

// Key renders the sort as a wire sort key: the column name for
// ascending, "-"+column for descending.
func (s Sort) Key() string {
	if s.Dir == Descending {
		return "-" + s.Column
	}

	return s.Column
}

// NextSort computes the sort resulting from toggling a column. Only an
// ascending sort on the very same column flips to descending; every
// other case, including toggling a column that is already sorted
// descending, lands on ascending. The descending-same-column branch not
// mirroring the ascending one is intentional: it reproduces the shipped
// behavior and is flagged for product clarification rather than fixed.
func NextSort(current Sort, column string) Sort {
	if current == Asc(column) {
		return Desc(column)
	}

	return Asc(column)
}

// Model is the aggregate application state. It is created once at
// startup and only ever changed by Transition.
type Model struct {
	// Err holds the display string of the last failure, "" when clear.
	Err string

	// Pager holds the loaded slice of the remote collection.
	Pager kinto.Pager

	// Form is the live draft being edited.
	Form FormData

	// CurrentTime is the last injected clock tick.
	CurrentTime time.Time

	// Sort is the active remote ordering.
	Sort Sort

	// Limit caps the result set; nil means unlimited.
	Limit *int
}

// NewModel returns the startup state for a collection: newest records
// first, a page size of DefaultLimit, empty pager and form.
func NewModel(res kinto.Resource) Model {
	limit := DefaultLimit

	return Model{
		Pager: kinto.NewPager(res),
		Sort:  Desc(ColumnLastModified),
		Limit: &limit,
	}
}

// Event is a state transition trigger: a UI action, a clock tick, or a
// completed server request re-entering the loop.
type Event interface{ isEvent() }

// TimeTick carries the injected current time.
type TimeTick struct{ Time time.Time }

// FetchRecords requests a fresh listing with the active sort and limit.
type FetchRecords struct{}

// FetchNextRecords requests the following page when a cursor is present.
type FetchNextRecords struct{}

// RecordFetched is the completion of a single-record fetch.
type RecordFetched struct {
	Record kinto.Record
	Err    error
}

// RecordsFetched is the completion of a listing or next-page fetch.
type RecordsFetched struct {
	Page kinto.Page
	Err  error
}

// RecordCreated is the completion of a create request.
type RecordCreated struct {
	Record kinto.Record
	Err    error
}

// StartEdit asks to edit a record; its canonical copy is fetched from
// the server before the form is populated.
type StartEdit struct{ ID string }

// RecordEdited is the completion of an update request.
type RecordEdited struct {
	Record kinto.Record
	Err    error
}

// StartDelete asks to delete a record.
type StartDelete struct{ ID string }

// RecordDeleted is the completion of a delete request.
type RecordDeleted struct {
	Record kinto.Record
	Err    error
}

// EditFormTitle replaces the draft title.
type EditFormTitle struct{ Title string }

// EditFormDescription replaces the draft description.
type EditFormDescription struct{ Description string }

// Submit saves the draft: create when no id is set, update otherwise.
type Submit struct{}

// ChangeSortColumn toggles the sort on a column.
type ChangeSortColumn struct{ Column string }

// SetLimitText parses a limit from user text; non-numeric input
// degrades to unlimited.
type SetLimitText struct{ Text string }

// ApplyLimit requests a fresh listing with the current limit.
type ApplyLimit struct{}

func (TimeTick) isEvent()            {}
func (FetchRecords) isEvent()        {}
func (FetchNextRecords) isEvent()    {}
func (RecordFetched) isEvent()       {}
func (RecordsFetched) isEvent()      {}
func (RecordCreated) isEvent()       {}
func (StartEdit) isEvent()           {}
func (RecordEdited) isEvent()        {}
func (StartDelete) isEvent()         {}
func (RecordDeleted) isEvent()       {}
func (EditFormTitle) isEvent()       {}
func (EditFormDescription) isEvent() {}
func (Submit) isEvent()              {}
func (ChangeSortColumn) isEvent()    {}
func (SetLimitText) isEvent()        {}
func (ApplyLimit) isEvent()          {}

// Command is an outgoing request description emitted by Transition.
type Command interface{ isCommand() }

// FetchList lists the collection with the given sort keys and limit.
type FetchList struct {
	SortKeys []string
	Limit    *int
}

// FetchNextPage follows a pagination cursor URL.
type FetchNextPage struct{ URL string }

// FetchRecord fetches a single record by id.
type FetchRecord struct{ ID string }

// CreateRecord creates a record from a draft body.
type CreateRecord struct{ Body kinto.RecordBody }

// UpdateRecord updates the record addressed by ID with a draft body.
type UpdateRecord struct {
	ID   string
	Body kinto.RecordBody
}

// DeleteRecord deletes the record addressed by ID.
type DeleteRecord struct{ ID string }

func (FetchList) isCommand()     {}
func (FetchNextPage) isCommand() {}
func (FetchRecord) isCommand()   {}
func (CreateRecord) isCommand()  {}
func (UpdateRecord) isCommand()  {}
func (DeleteRecord) isCommand()  {}
