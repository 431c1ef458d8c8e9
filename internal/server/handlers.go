package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/inovacc/kollect/internal/application"
	"github.com/inovacc/kollect/internal/kinto"
	"github.com/inovacc/kollect/internal/store"
)

type dataEnvelope struct {
	Data json.RawMessage `json:"data"`
}

// recordPatch distinguishes absent fields from empty ones so PATCH only
// touches what the client sent.
type recordPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

func collectionKey(r *http.Request) string {
	return r.PathValue("bucket") + "/" + r.PathValue("collection")
}

func (s *Server) handleHello(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"project_name":     application.AppName,
		"project_version":  application.Version,
		"http_api_version": "1.22",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	if err := s.storage.Ping(); err != nil {
		s.writeError(w, http.StatusServiceUnavailable, 201, "Service Unavailable", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	records, err := s.storage.ListRecords(collectionKey(r))
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, 999, "Internal Server Error", err.Error())

		return
	}

	query := r.URL.Query()

	sortKeys := []string{"-last_modified"}
	if raw := query.Get("_sort"); raw != "" {
		sortKeys = strings.Split(raw, ",")
	}

	sortRecords(records, sortKeys)

	limit := 0

	if raw := query.Get("_limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			s.writeError(w, http.StatusBadRequest, 107, "Invalid parameters", "_limit should be an integer")

			return
		}
	}

	offset := 0

	if raw := query.Get("_token"); raw != "" {
		offset, err = decodeToken(raw)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, 107, "Invalid parameters", "_token is invalid")

			return
		}
	}

	total := len(records)

	if offset > total {
		offset = total
	}

	page := records[offset:]
	next := ""

	if limit > 0 && len(page) > limit {
		page = page[:limit]
		next = nextPageURL(r, offset+limit)
	}

	w.Header().Set("Total-Records", strconv.Itoa(total))

	if next != "" {
		w.Header().Set("Next-Page", next)
	}

	writeJSON(w, http.StatusOK, map[string][]kinto.Record{"data": page})
}

func (s *Server) handleCreateRecord(w http.ResponseWriter, r *http.Request) {
	patch, ok := s.decodePatch(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec := kinto.Record{
		ID:           uuid.NewString(),
		Title:        patch.Title,
		Description:  patch.Description,
		LastModified: s.nextTimestamp(),
	}

	if err := s.storage.SaveRecord(collectionKey(r), rec); err != nil {
		s.writeError(w, http.StatusInternalServerError, 999, "Internal Server Error", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, map[string]kinto.Record{"data": rec})
}

func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	rec, err := s.storage.GetRecord(collectionKey(r), r.PathValue("id"))
	if err != nil {
		s.writeStoreError(w, err)

		return
	}

	writeJSON(w, http.StatusOK, map[string]kinto.Record{"data": rec})
}

func (s *Server) handleUpdateRecord(w http.ResponseWriter, r *http.Request) {
	patch, ok := s.decodePatch(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	coll := collectionKey(r)

	rec, err := s.storage.GetRecord(coll, r.PathValue("id"))
	if err != nil {
		s.writeStoreError(w, err)

		return
	}

	if patch.Title != nil {
		rec.Title = patch.Title
	}

	if patch.Description != nil {
		rec.Description = patch.Description
	}

	rec.LastModified = s.nextTimestamp()

	if err := s.storage.SaveRecord(coll, rec); err != nil {
		s.writeError(w, http.StatusInternalServerError, 999, "Internal Server Error", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, map[string]kinto.Record{"data": rec})
}

func (s *Server) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.storage.DeleteRecord(collectionKey(r), r.PathValue("id"))
	if err != nil {
		s.writeStoreError(w, err)

		return
	}

	tombstone := map[string]any{
		"data": map[string]any{
			"id":            rec.ID,
			"deleted":       true,
			"last_modified": s.nextTimestamp(),
		},
	}

	writeJSON(w, http.StatusOK, tombstone)
}

func (s *Server) decodePatch(w http.ResponseWriter, r *http.Request) (recordPatch, bool) {
	var envelope dataEnvelope

	if err := json.NewDecoder(r.Body).Decode(&envelope); err != nil {
		s.writeError(w, http.StatusBadRequest, 107, "Invalid parameters", "request body is not valid JSON")

		return recordPatch{}, false
	}

	var patch recordPatch

	if len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, &patch); err != nil {
			s.writeError(w, http.StatusBadRequest, 107, "Invalid parameters", "data is not a valid record")

			return recordPatch{}, false
		}
	}

	return patch, true
}

func (s *Server) writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, 110, "Not Found", "the record does not exist")

		return
	}

	s.writeError(w, http.StatusInternalServerError, 999, "Internal Server Error", err.Error())
}

func (s *Server) writeError(w http.ResponseWriter, code, errno int, reason, message string) {
	writeJSON(w, code, kinto.APIError{
		Code:    code,
		Errno:   errno,
		Reason:  reason,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(payload)
}

// sortRecords orders records by the given keys; a "-" prefix sorts a
// key descending. Unknown keys are ignored.
func sortRecords(records []kinto.Record, keys []string) {
	sort.SliceStable(records, func(i, j int) bool {
		for _, key := range keys {
			descending := strings.HasPrefix(key, "-")
			column := strings.TrimPrefix(key, "-")

			cmp := compareRecords(records[i], records[j], column)
			if cmp == 0 {
				continue
			}

			if descending {
				return cmp > 0
			}

			return cmp < 0
		}

		return false
	})
}

func compareRecords(a, b kinto.Record, column string) int {
	switch column {
	case "id":
		return strings.Compare(a.ID, b.ID)
	case "title":
		return strings.Compare(stringValue(a.Title), stringValue(b.Title))
	case "description":
		return strings.Compare(stringValue(a.Description), stringValue(b.Description))
	case "last_modified":
		switch {
		case a.LastModified < b.LastModified:
			return -1
		case a.LastModified > b.LastModified:
			return 1
		default:
			return 0
		}
	default:
		return 0
	}
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}

type pageToken struct {
	Offset int `json:"offset"`
}

func encodeToken(offset int) string {
	data, _ := json.Marshal(pageToken{Offset: offset})

	return base64.RawURLEncoding.EncodeToString(data)
}

func decodeToken(raw string) (int, error) {
	data, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return 0, err
	}

	var token pageToken
	if err := json.Unmarshal(data, &token); err != nil {
		return 0, err
	}

	if token.Offset < 0 {
		return 0, fmt.Errorf("negative offset")
	}

	return token.Offset, nil
}

// nextPageURL rebuilds the request URL with the continuation token.
func nextPageURL(r *http.Request, offset int) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}

	query := url.Values{}
	for key, values := range r.URL.Query() {
		query[key] = values
	}

	query.Set("_token", encodeToken(offset))

	return scheme + "://" + r.Host + r.URL.Path + "?" + query.Encode()
}
