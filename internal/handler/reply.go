package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ctchan-dev/ctchan/internal/domain"
	"github.com/ctchan-dev/ctchan/internal/utils"
)

type CreateReplyRequest struct {
	Message    string        `json:"message" validate:"required"`
	PosterName string        `json:"poster_name"`
	Image      *domain.Image `json:"image"`
}

func (h *Handler) CreateReply(w http.ResponseWriter, r *http.Request) {
	threadId, err := parseIntParam(chi.URLParam(r, "thread"), "thread ID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var body CreateReplyRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	reply, err := h.reply.Create(domain.ReplyDraft{
		ThreadId:   threadId,
		Message:    body.Message,
		PosterName: body.PosterName,
		Image:      body.Image,
		SessionKey: h.sessionKey(w, r),
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSONStatus(w, http.StatusCreated, reply)
}

// LatestReplies serves the incremental poll clients use between websocket
// reconnects.
func (h *Handler) LatestReplies(w http.ResponseWriter, r *http.Request) {
	threadId, err := parseIntParam(chi.URLParam(r, "thread"), "thread ID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := parseIntParam(limitStr, "limit"); err == nil {
			limit = int(parsed)
		}
	}

	replies, err := h.reply.Latest(threadId, limit)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, replies)
}
