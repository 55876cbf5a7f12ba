package httpapi

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/labelshop/internal/common"
)

const (
	sessionCookieName = "labelshop_session"
	sessionMaxAge     = 30 * 24 * time.Hour
)

// sessionID returns the browser session id, or "" when the request has none.
func sessionID(r *http.Request) string {
	c, err := r.Cookie(sessionCookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// ensureSession returns the current session id, issuing a new cookie when
// the request carries none.
func (h *Handler) ensureSession(w http.ResponseWriter, r *http.Request) (string, error) {
	if id := sessionID(r); id != "" {
		return id, nil
	}
	id, err := common.MakeRandHexString(16)
	if err != nil {
		return "", err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(sessionMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.opts.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	return id, nil
}
