package render

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/avolkov/userboard/internal/web/viewmodel"
)

const flashCookie = "userboard_flash"

// Flash levels.
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// SetFlash queues a one-shot notification for the next rendered page. It
// replaces the client-side toast of a single-page app: the message rides a
// cookie across the redirect and is cleared on first read.
func SetFlash(w http.ResponseWriter, level, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(level + "|" + message),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
	})
}

// PopFlash reads and clears the pending notification, if any.
func PopFlash(w http.ResponseWriter, r *http.Request) *viewmodel.Flash {
	cookie, err := r.Cookie(flashCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	raw, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return nil
	}
	level, message, found := strings.Cut(raw, "|")
	if !found || message == "" {
		return nil
	}
	return &viewmodel.Flash{Level: level, Message: message}
}
