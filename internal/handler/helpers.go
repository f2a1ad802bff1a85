package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/ctchan-dev/ctchan/internal/domain"
	internal_errors "github.com/ctchan-dev/ctchan/internal/errors"
)

const sessionCookieName = "posterSession"

// resolveBoard looks up a board by tag for the public endpoints. Hidden
// boards answer 404 to everyone but moderators, indistinguishable from
// boards that do not exist.
func (h *Handler) resolveBoard(r *http.Request, tag string) (domain.Board, error) {
	board, err := h.boards.Get(tag)
	if err != nil {
		return domain.Board{}, err
	}
	if board.Hidden && !h.isAdmin(r) {
		return domain.Board{}, internal_errors.NotFound("Board not found")
	}
	return board, nil
}

// parseIntParam parses an integer parameter from a string and returns a meaningful error
func parseIntParam(param string, paramName string) (int64, error) {
	val, err := strconv.ParseInt(param, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: must be an integer", paramName)
	}
	return val, nil
}

// sessionKey returns the anonymous session cookie value, minting and setting
// a fresh one when the client has none. The cookie carries no identity, it
// only keys the per-thread poster ids.
func (h *Handler) sessionKey(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	key := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    key,
		Path:     "/",
		MaxAge:   int(h.cfg.Public.SessionTTL().Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.Public.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	return key
}
