package pages

import (
	"net/http"
	"net/url"
)

var flashKinds = map[string]bool{"success": true, "error": true}

// FlashFromQuery reads a flash message carried across a redirect.
func FlashFromQuery(r *http.Request) *Flash {
	q := r.URL.Query()
	kind, msg := q.Get("flash"), q.Get("msg")
	if !flashKinds[kind] || msg == "" {
		return nil
	}
	return &Flash{Kind: kind, Message: msg}
}

// RedirectFlash redirects (303) to path with a flash message in the query.
func RedirectFlash(w http.ResponseWriter, r *http.Request, path, kind, msg string) {
	q := url.Values{"flash": {kind}, "msg": {msg}}.Encode()
	http.Redirect(w, r, path+"?"+q, http.StatusSeeOther)
}
