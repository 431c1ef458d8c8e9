package kinto

// Pager tracks the records loaded from a collection across successive
// page fetches. It is a value type: every operation returns a new Pager
// so callers holding an old copy never observe mutation.
type Pager struct {
	// Resource identifies the collection being paged.
	Resource Resource

	// Objects are the loaded records in server-provided order.
	Objects []Record

	// Total is the server-reported size of the whole collection.
	Total int

	// NextPage is the cursor URL for the following page, "" when the
	// listing is exhausted.
	NextPage string
}

// NewPager returns an empty pager bound to a resource.
func NewPager(res Resource) Pager {
	return Pager{Resource: res}
}

// Reset drops all loaded records and the cursor, preserving the
// resource identity.
func (p Pager) Reset() Pager {
	return NewPager(p.Resource)
}

// HasNext reports whether a further page can be fetched.
func (p Pager) HasNext() bool {
	return p.NextPage != ""
}

// Merge folds a freshly fetched page into the pager: objects are
// appended and the cursor and total are taken from the incoming page.
// A full refresh resets the pager first, so the same merge serves both
// refresh and load-more.
func (p Pager) Merge(page Page) Pager {
	objects := make([]Record, 0, len(p.Objects)+len(page.Objects))
	objects = append(objects, p.Objects...)
	objects = append(objects, page.Objects...)

	return Pager{
		Resource: p.Resource,
		Objects:  objects,
		Total:    page.Total,
		NextPage: page.NextPage,
	}
}

// RemoveByID drops the record with the given id, leaving every other
// entry and their order untouched.
func (p Pager) RemoveByID(id string) Pager {
	objects := make([]Record, 0, len(p.Objects))

	for _, rec := range p.Objects {
		if rec.ID != id {
			objects = append(objects, rec)
		}
	}

	p.Objects = objects

	return p
}
