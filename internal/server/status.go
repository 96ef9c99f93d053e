package server

import (
	"errors"
	"net/http"

	"github.com/nao1215/proxycollector/internal/model"
)

// StatusFor maps a collect error to the HTTP status of the response.
//
// An upstream failure reuses the upstream status when it is an error status
// (4xx or 5xx). Transport failures and any other upstream status become 500,
// since a 1xx, 2xx or 3xx status cannot carry the error envelope.
func StatusFor(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var fetchErr *model.FetchError
	switch {
	case errors.Is(err, model.ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed
	case errors.Is(err, model.ErrMissingChannel), errors.Is(err, model.ErrInvalidChannel):
		return http.StatusBadRequest
	case errors.As(err, &fetchErr):
		if fetchErr.StatusCode >= http.StatusBadRequest && fetchErr.StatusCode <= 599 {
			return fetchErr.StatusCode
		}
		return http.StatusInternalServerError
	case errors.Is(err, model.ErrNoProxiesFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
