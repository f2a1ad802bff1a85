package handler

import (
	"net/http"

	"github.com/ctchan-dev/ctchan/internal/boards"
	"github.com/ctchan-dev/ctchan/internal/config"
	"github.com/ctchan-dev/ctchan/internal/imager"
	"github.com/ctchan-dev/ctchan/internal/service"
)

type Handler struct {
	auth    service.AuthService
	thread  service.ThreadService
	reply   service.ReplyService
	boards  *boards.Registry
	images  *imager.Store
	cfg     *config.Config
	isAdmin func(*http.Request) bool
}

// New builds the handler. isAdmin may be nil, in which case no request is
// treated as a moderator.
func New(auth service.AuthService, thread service.ThreadService, reply service.ReplyService, boards *boards.Registry, images *imager.Store, cfg *config.Config, isAdmin func(*http.Request) bool) *Handler {
	if isAdmin == nil {
		isAdmin = func(*http.Request) bool { return false }
	}
	return &Handler{auth, thread, reply, boards, images, cfg, isAdmin}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
