package handler

import (
	"net/http"

	"github.com/ctchan-dev/ctchan/internal/utils"
)

// ListBoards returns the visible boards in their configured order.
func (h *Handler) ListBoards(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.boards.List())
}

// ListAllBoards includes hidden boards. Moderation surface only.
func (h *Handler) ListAllBoards(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.boards.ListAll())
}
