package admin

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inno8-site/internal/auth"
	"inno8-site/internal/backend"
	"inno8-site/internal/content"
)

type fakeState struct{ on bool }

func (f fakeState) Enabled() bool { return f.on }

type recorded struct {
	method, path, auth string
	body               map[string]any
}

type fakeAPI struct {
	mu       sync.Mutex
	requests []recorded
	failSubs int
}

func (f *fakeAPI) handler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.mu.Lock()
		f.requests = append(f.requests, recorded{r.Method, r.URL.Path, r.Header.Get("Authorization"), body})
		failSubs := f.failSubs
		f.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		switch r.Method + " " + r.URL.Path {
		case "GET /api/footer-settings":
			_, _ = w.Write([]byte(`{"about_text":"Remote about","newsletter_enabled":true,"social_links":[{"platform":"X","url":"https://x.com/inno8"}]}`))
		case "PUT /api/footer-settings":
			_, _ = w.Write([]byte(`{}`))
		case "GET /api/newsletter-subscribers":
			if failSubs != 0 {
				w.WriteHeader(failSubs)
				return
			}
			_, _ = w.Write([]byte(`[{"id":1,"email":"reader@example.com","subscribed_at":"2024-05-01"}]`))
		case "POST /api/newsletter-subscribe":
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{}`))
		case "POST /api/token":
			if body["password"] == "secret" {
				_, _ = w.Write([]byte(`{"access":"acc","refresh":"ref"}`))
				return
			}
			w.WriteHeader(http.StatusUnauthorized)
		case "POST /api/maintenance-toggle":
			_, _ = w.Write([]byte(`{"maintenance_mode":true}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

func (f *fakeAPI) last(method, path string) (recorded, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.requests) - 1; i >= 0; i-- {
		if f.requests[i].method == method && f.requests[i].path == path {
			return f.requests[i], true
		}
	}
	return recorded{}, false
}

func newConsole(t *testing.T, api *fakeAPI) *Console {
	t.Helper()
	srv := httptest.NewServer(api.handler(t))
	t.Cleanup(srv.Close)

	client := backend.NewClient(srv.URL+"/api", 2*time.Second)
	fb, err := content.LoadFallback()
	require.NoError(t, err)
	proxy := auth.NewProxy(client, auth.CookieConfig{}, 100)
	return NewConsole(client, proxy, content.NewCatalog(fb), fakeState{on: false})
}

func withSession(r *http.Request) *http.Request {
	r.AddCookie(&http.Cookie{Name: auth.AccessCookie, Value: "acc"})
	return r
}

func postForm(path string, form url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func TestFooter_RendersBackendData(t *testing.T) {
	api := &fakeAPI{}
	c := newConsole(t, api)

	rec := httptest.NewRecorder()
	c.Footer(rec, withSession(httptest.NewRequest(http.MethodGet, "/admin/footer?flash=success&msg=Saved", nil)))

	require.Equal(t, http.StatusOK, rec.Code)
	html := rec.Body.String()
	assert.Contains(t, html, "Remote about")
	assert.Contains(t, html, "reader@example.com")
	assert.Contains(t, html, "Saved")

	req, ok := api.last(http.MethodGet, "/api/newsletter-subscribers")
	require.True(t, ok)
	assert.Equal(t, "Bearer acc", req.auth)
}

func TestFooter_SubscriberFailureShowsNotice(t *testing.T) {
	api := &fakeAPI{failSubs: http.StatusInternalServerError}
	c := newConsole(t, api)

	rec := httptest.NewRecorder()
	c.Footer(rec, withSession(httptest.NewRequest(http.MethodGet, "/admin/footer", nil)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Could not load subscribers")
}

func TestFooter_ExpiredTokenRedirectsToLogin(t *testing.T) {
	api := &fakeAPI{failSubs: http.StatusUnauthorized}
	c := newConsole(t, api)

	rec := httptest.NewRecorder()
	c.Footer(rec, withSession(httptest.NewRequest(http.MethodGet, "/admin/footer", nil)))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/login", rec.Header().Get("Location"))
}

func TestUpdateFooter_PutsSettingsWithBearer(t *testing.T) {
	api := &fakeAPI{}
	c := newConsole(t, api)

	form := url.Values{
		"about_text":         {"  New about  "},
		"newsletter_heading": {"Join us"},
		"newsletter_enabled": {"true"},
		"social_platform_0":  {"GitHub"},
		"social_url_0":       {"https://github.com/inno8"},
		"social_platform_1":  {""},
		"social_url_1":       {""},
	}
	rec := httptest.NewRecorder()
	c.UpdateFooter(rec, withSession(postForm("/admin/footer", form)))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "flash=success")

	req, ok := api.last(http.MethodPut, "/api/footer-settings")
	require.True(t, ok)
	assert.Equal(t, "Bearer acc", req.auth)
	assert.Equal(t, "New about", req.body["about_text"])
	assert.Equal(t, true, req.body["newsletter_enabled"])
	links, _ := req.body["social_links"].([]any)
	assert.Len(t, links, 1)
}

func TestToggleMaintenance_Form(t *testing.T) {
	api := &fakeAPI{}
	c := newConsole(t, api)

	rec := httptest.NewRecorder()
	c.ToggleMaintenance(rec, withSession(postForm("/admin/maintenance", url.Values{"maintenance_mode": {"true"}})))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "flash=success")
	req, ok := api.last(http.MethodPost, "/api/maintenance-toggle")
	require.True(t, ok)
	assert.Equal(t, "Bearer acc", req.auth)
	assert.Equal(t, true, req.body["maintenance_mode"])

	rec = httptest.NewRecorder()
	c.ToggleMaintenance(rec, withSession(postForm("/admin/maintenance", url.Values{"maintenance_mode": {"maybe"}})))
	assert.Contains(t, rec.Header().Get("Location"), "flash=error")
}

func TestLogin_Form(t *testing.T) {
	api := &fakeAPI{}
	c := newConsole(t, api)

	rec := httptest.NewRecorder()
	c.Login(rec, postForm("/admin/login", url.Values{"username": {"admin"}, "password": {"secret"}}))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/footer", rec.Header().Get("Location"))
	var names []string
	for _, ck := range rec.Result().Cookies() {
		names = append(names, ck.Name)
	}
	assert.ElementsMatch(t, []string{auth.AccessCookie, auth.RefreshCookie}, names)

	rec = httptest.NewRecorder()
	c.Login(rec, postForm("/admin/login", url.Values{"username": {"admin"}, "password": {"nope"}}))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid credentials")
	assert.Contains(t, rec.Body.String(), `value="admin"`)
}

func TestLoginPage_RedirectsWhenSignedIn(t *testing.T) {
	c := newConsole(t, &fakeAPI{})

	rec := httptest.NewRecorder()
	c.LoginPage(rec, withSession(httptest.NewRequest(http.MethodGet, "/admin/login", nil)))
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	rec = httptest.NewRecorder()
	c.LoginPage(rec, httptest.NewRequest(http.MethodGet, "/admin/login", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Admin sign in")
}

func TestNewsletter(t *testing.T) {
	api := &fakeAPI{}
	c := newConsole(t, api)

	rec := httptest.NewRecorder()
	req := postForm("/newsletter", url.Values{"email": {" reader@example.com "}})
	req.Header.Set("Referer", "http://example.com/about")
	c.Newsletter(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Location"), "/about?"))
	got, ok := api.last(http.MethodPost, "/api/newsletter-subscribe")
	require.True(t, ok)
	assert.Equal(t, "reader@example.com", got.body["email"])

	rec = httptest.NewRecorder()
	c.Newsletter(rec, postForm("/newsletter", url.Values{"email": {"not-an-email"}}))
	assert.Contains(t, rec.Header().Get("Location"), "flash=error")
}
