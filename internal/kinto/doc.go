// Package kinto is a client for Kinto-style record collection APIs.
//
// A collection is an ordered set of JSON records addressed as
// /buckets/{bucket}/collections/{collection}/records. The server owns
// record ids and last_modified timestamps; the client reads and writes
// plain {title, description} payloads wrapped in the protocol's "data"
// envelope.
//
// # Components
//
//   - Client: HTTP client for list/get/create/update/delete, configured
//     with an explicit Config so tests can point it at a local server
//   - Resource: names a bucket/collection pair and derives endpoint paths
//   - Page: one server response worth of records plus pagination metadata
//   - Pager: accumulates pages across "load more" fetches and tracks the
//     Next-Page cursor
//
// Listing supports the _sort and _limit query parameters; further pages
// are fetched by following the Next-Page header URL verbatim.
package kinto
