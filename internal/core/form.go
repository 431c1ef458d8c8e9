package core

import (
	"slices"

	"github.com/inovacc/kollect/internal/kinto"
)

// FormData is the local draft of a record. A nil ID means a new record
// is being created; otherwise the draft edits the identified record.
type FormData struct {
	ID          *string
	Title       string
	Description string
}

// IsEmpty reports whether the draft is the zero draft.
func (f FormData) IsEmpty() bool {
	return f.ID == nil && f.Title == "" && f.Description == ""
}

// RecordToForm builds an editing draft from a server record, mapping
// absent optional fields to empty strings.
func RecordToForm(rec kinto.Record) FormData {
	id := rec.ID

	return FormData{
		ID:          &id,
		Title:       deref(rec.Title),
		Description: deref(rec.Description),
	}
}

// FormBody builds the wire payload of a draft. The id never travels in
// the body.
func FormBody(form FormData) kinto.RecordBody {
	return kinto.RecordBody{
		Title:       form.Title,
		Description: form.Description,
	}
}

// liveReflect mirrors unsaved draft edits into the loaded records so
// the list shows them before the save completes. Only the entry whose
// id matches the draft is rewritten; a draft for a new record touches
// nothing. The object slice is cloned so older model values stay
// unchanged.
func liveReflect(p kinto.Pager, form FormData) kinto.Pager {
	if form.ID == nil {
		return p
	}

	objects := slices.Clone(p.Objects)

	for i := range objects {
		if objects[i].ID != *form.ID {
			continue
		}

		title := form.Title
		description := form.Description
		objects[i].Title = &title
		objects[i].Description = &description
	}

	p.Objects = objects

	return p
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
