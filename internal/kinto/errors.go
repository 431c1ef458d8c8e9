package kinto

import "fmt"

// APIError is the error payload returned by record servers:
//
//	{"code": 404, "errno": 110, "error": "Not Found", "message": "..."}
type APIError struct {
	Code    int    `json:"code"`
	Errno   int    `json:"errno"`
	Reason  string `json:"error"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s (HTTP %d): %s", e.Reason, e.Code, e.Message)
	}

	return fmt.Sprintf("%s (HTTP %d)", e.Reason, e.Code)
}
