package router

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ctchan-dev/ctchan/internal/live"
)

// serveThreadReplies adapts the thread-scoped websocket endpoint to the
// router: the hub wants a parsed thread id.
func serveThreadReplies(hub *live.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		threadId, err := strconv.ParseInt(chi.URLParam(r, "thread"), 10, 64)
		if err != nil {
			http.Error(w, "invalid thread ID: must be an integer", http.StatusBadRequest)
			return
		}
		hub.ServeReplies(threadId, w, r)
	}
}
