package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ctchan-dev/ctchan/internal/domain"
	"github.com/ctchan-dev/ctchan/internal/utils"
)

type CreateThreadRequest struct {
	Subject    string        `json:"subject" validate:"required"`
	Message    string        `json:"message" validate:"required"`
	PosterName string        `json:"poster_name"`
	Image      *domain.Image `json:"image"`
}

func (h *Handler) CreateThread(w http.ResponseWriter, r *http.Request) {
	board := chi.URLParam(r, "board")
	if _, err := h.resolveBoard(r, board); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	var body CreateThreadRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	thread, err := h.thread.Create(domain.ThreadDraft{
		Board:      board,
		Subject:    body.Subject,
		Message:    body.Message,
		PosterName: body.PosterName,
		Image:      body.Image,
		SessionKey: h.sessionKey(w, r),
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSONStatus(w, http.StatusCreated, thread)
}

func (h *Handler) ListThreads(w http.ResponseWriter, r *http.Request) {
	board := chi.URLParam(r, "board")
	if _, err := h.resolveBoard(r, board); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	// a missing or malformed page defaults to the first one
	page := 1
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if parsed, err := parseIntParam(pageStr, "page"); err == nil && parsed > 0 {
			page = int(parsed)
		}
	}

	listing, err := h.thread.List(board, page)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, listing)
}

func (h *Handler) Catalog(w http.ResponseWriter, r *http.Request) {
	board := chi.URLParam(r, "board")
	if _, err := h.resolveBoard(r, board); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	threads, err := h.thread.Catalog(board)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, threads)
}

func (h *Handler) GetThread(w http.ResponseWriter, r *http.Request) {
	threadId, err := parseIntParam(chi.URLParam(r, "thread"), "thread ID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	thread, err := h.thread.Get(threadId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, thread)
}
