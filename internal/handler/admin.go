package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ctchan-dev/ctchan/internal/utils"
)

type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}

// AdminLogin exchanges the moderation password for the accessToken cookie.
// The token is also returned in the body for non-browser clients.
func (h *Handler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var creds LoginRequest
	if err := utils.DecodeValidate(r.Body, &creds); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	accessToken, err := h.auth.Login(creds.Password)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Path:     "/",
		Name:     "accessToken",
		Value:    accessToken,
		MaxAge:   int(h.cfg.Public.AdminTokenTTL().Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.Public.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	utils.WriteJSON(w, map[string]string{"access_token": accessToken})
}

type FlagRequest struct {
	Value *bool `json:"value" validate:"required"`
}

func (h *Handler) SetThreadSticky(w http.ResponseWriter, r *http.Request) {
	h.setThreadFlag(w, r, "sticky")
}

func (h *Handler) SetThreadLocked(w http.ResponseWriter, r *http.Request) {
	h.setThreadFlag(w, r, "lock")
}

func (h *Handler) setThreadFlag(w http.ResponseWriter, r *http.Request, flag string) {
	threadId, err := parseIntParam(chi.URLParam(r, "thread"), "thread ID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var body FlagRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	set := h.thread.SetSticky
	if flag == "lock" {
		set = h.thread.SetLocked
	}
	thread, err := set(threadId, *body.Value)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, thread)
}

func (h *Handler) DeleteThread(w http.ResponseWriter, r *http.Request) {
	threadId, err := parseIntParam(chi.URLParam(r, "thread"), "thread ID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	thread, err := h.thread.Delete(threadId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, thread)
}

func (h *Handler) RestoreThread(w http.ResponseWriter, r *http.Request) {
	threadId, err := parseIntParam(chi.URLParam(r, "thread"), "thread ID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	thread, err := h.thread.Restore(threadId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, thread)
}

func (h *Handler) DeleteReply(w http.ResponseWriter, r *http.Request) {
	replyId, err := parseIntParam(chi.URLParam(r, "reply"), "reply ID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	reply, err := h.reply.Delete(replyId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, reply)
}

func (h *Handler) RestoreReply(w http.ResponseWriter, r *http.Request) {
	replyId, err := parseIntParam(chi.URLParam(r, "reply"), "reply ID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	reply, err := h.reply.Restore(replyId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, reply)
}

func (h *Handler) Overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.thread.Overview()
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, overview)
}
