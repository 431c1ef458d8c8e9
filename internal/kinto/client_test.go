package kinto

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

var clientResource = Resource{Bucket: "default", Collection: "items"}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := New(Config{BaseURL: srv.URL + "/v1"}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	return client, srv
}

func TestNewRequiresBaseURL(t *testing.T) {
	_, err := New(Config{}, nil)
	require.Error(t, err)
}

func TestResourcePaths(t *testing.T) {
	require.Equal(t, "/buckets/default/collections/items/records", clientResource.RecordsPath())
	require.Equal(t, "/buckets/default/collections/items/records/abc", clientResource.RecordPath("abc"))
}

func TestListRecords(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/v1/buckets/default/collections/items/records", r.URL.Path)
		require.Equal(t, "-last_modified", r.URL.Query().Get("_sort"))
		require.Equal(t, "5", r.URL.Query().Get("_limit"))

		w.Header().Set("Total-Records", "12")
		w.Header().Set("Next-Page", "http://example.com/records?_token=t1")
		_, _ = w.Write([]byte(`{"data": [
			{"id": "a", "title": "one", "description": "first", "last_modified": 100},
			{"id": "b", "last_modified": 90}
		]}`))
	})

	limit := 5

	page, err := client.ListRecords(context.Background(), clientResource, []string{"-last_modified"}, &limit)
	require.NoError(t, err)

	require.Len(t, page.Objects, 2)
	require.Equal(t, 12, page.Total)
	require.Equal(t, "http://example.com/records?_token=t1", page.NextPage)

	require.Equal(t, "a", page.Objects[0].ID)
	require.NotNil(t, page.Objects[0].Title)
	require.Equal(t, "one", *page.Objects[0].Title)

	require.Nil(t, page.Objects[1].Title, "absent optional field decodes to nil")
	require.Nil(t, page.Objects[1].Description)
}

func TestListRecordsNoParams(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Empty(t, r.URL.RawQuery)
		_, _ = w.Write([]byte(`{"data": []}`))
	})

	page, err := client.ListRecords(context.Background(), clientResource, nil, nil)
	require.NoError(t, err)
	require.Empty(t, page.Objects)
	require.Empty(t, page.NextPage)
}

func TestFetchPageFollowsCursorURL(t *testing.T) {
	var requested string

	client, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requested = r.URL.String()
		_, _ = w.Write([]byte(`{"data": [{"id": "c", "last_modified": 80}]}`))
	})

	page, err := client.FetchPage(context.Background(), srv.URL+"/v1/buckets/default/collections/items/records?_limit=2&_token=abc")
	require.NoError(t, err)
	require.Len(t, page.Objects, 1)
	require.Equal(t, "/v1/buckets/default/collections/items/records?_limit=2&_token=abc", requested)
}

func TestGetRecord(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/v1/buckets/default/collections/items/records/abc", r.URL.Path)
		_, _ = w.Write([]byte(`{"data": {"id": "abc", "title": "one", "last_modified": 100}}`))
	})

	rec, err := client.GetRecord(context.Background(), clientResource, "abc")
	require.NoError(t, err)
	require.Equal(t, "abc", rec.ID)
	require.Equal(t, "one", *rec.Title)
	require.EqualValues(t, 100, rec.LastModified)
}

func TestCreateRecord(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/buckets/default/collections/items/records", r.URL.Path)

		var payload struct {
			Data RecordBody `json:"data"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Equal(t, RecordBody{Title: "one", Description: "first"}, payload.Data)

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data": {"id": "new", "title": "one", "description": "first", "last_modified": 100}}`))
	})

	rec, err := client.CreateRecord(context.Background(), clientResource, RecordBody{Title: "one", Description: "first"})
	require.NoError(t, err)
	require.Equal(t, "new", rec.ID)
}

func TestUpdateRecordUsesPatch(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/v1/buckets/default/collections/items/records/abc", r.URL.Path)
		_, _ = w.Write([]byte(`{"data": {"id": "abc", "title": "edited", "last_modified": 101}}`))
	})

	rec, err := client.UpdateRecord(context.Background(), clientResource, "abc", RecordBody{Title: "edited"})
	require.NoError(t, err)
	require.Equal(t, "edited", *rec.Title)
	require.EqualValues(t, 101, rec.LastModified)
}

func TestDeleteRecordReturnsTombstone(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		_, _ = w.Write([]byte(`{"data": {"id": "abc", "deleted": true, "last_modified": 102}}`))
	})

	rec, err := client.DeleteRecord(context.Background(), clientResource, "abc")
	require.NoError(t, err)
	require.Equal(t, "abc", rec.ID)
	require.EqualValues(t, 102, rec.LastModified)
}

func TestAPIErrorDecoding(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"code": 404, "errno": 110, "error": "Not Found", "message": "no such record"}`))
	})

	_, err := client.GetRecord(context.Background(), clientResource, "missing")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 404, apiErr.Code)
	require.Equal(t, 110, apiErr.Errno)
	require.Contains(t, apiErr.Error(), "no such record")
}

func TestNonProtocolErrorBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream exploded"))
	})

	_, err := client.GetRecord(context.Background(), clientResource, "abc")
	require.Error(t, err)
	require.Contains(t, err.Error(), "502")
	require.Contains(t, err.Error(), "upstream exploded")
}

func TestBasicAuthHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		require.Equal(t, "alice", user)
		require.Equal(t, "secret", pass)
		_, _ = w.Write([]byte(`{"data": []}`))
	}))
	t.Cleanup(srv.Close)

	client, err := New(Config{
		BaseURL:  srv.URL + "/v1",
		Username: "alice",
		Password: "secret",
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	_, err = client.ListRecords(context.Background(), clientResource, nil, nil)
	require.NoError(t, err)
}
