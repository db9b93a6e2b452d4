package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/rezkam/todos/internal/infrastructure/http/response"
)

// Recoverer turns a handler panic into the generic 500 error body.
// The panic value and stack are logged; nothing reaches the client.
// http.ErrAbortHandler is re-panicked so net/http can abort the connection.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			response.InternalError(w, r, fmt.Errorf("panic: %v\n%s", rec, debug.Stack()))
		}()

		next.ServeHTTP(w, r)
	})
}
