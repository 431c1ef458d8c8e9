package kinto

// Record is a single entry of a remote collection. Title and Description
// are optional on the wire; an absent field decodes to nil rather than
// an empty string so the two cases stay distinguishable.
type Record struct {
	ID           string  `json:"id"`
	Title        *string `json:"title,omitempty"`
	Description  *string `json:"description,omitempty"`
	LastModified int64   `json:"last_modified"`
}

// RecordBody is the writable part of a record. The id is never sent in
// the body; updates address it through the request URL.
type RecordBody struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Page is one list response: the records it carried, the server-reported
// total for the whole collection, and the Next-Page cursor URL ("" when
// the listing is exhausted).
type Page struct {
	Objects  []Record
	Total    int
	NextPage string
}

// Resource names a bucket/collection pair on a record server.
type Resource struct {
	Bucket     string
	Collection string
}

// RecordsPath returns the collection endpoint path relative to the
// server root.
func (r Resource) RecordsPath() string {
	return "/buckets/" + r.Bucket + "/collections/" + r.Collection + "/records"
}

// RecordPath returns the endpoint path of a single record.
func (r Resource) RecordPath(id string) string {
	return r.RecordsPath() + "/" + id
}
