package handlers

import (
	"net/http"

	"github.com/hongminglow/cost-manager/internal/http/respond"
)

// apiFunc is an HTTP handler that reports failure by returning an error.
type apiFunc func(w http.ResponseWriter, r *http.Request) error

// handle forwards a returned error to respond.Error, which picks the status
// from the error kind.
func handle(fn apiFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			respond.Error(w, r, err)
		}
	}
}
