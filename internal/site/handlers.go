package site

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"inno8-site/internal/auth"
	"inno8-site/internal/contact"
	"inno8-site/internal/content"
	"inno8-site/internal/pages"
	"inno8-site/internal/theme"
)

// page resolves the layout chrome alongside any page-specific sections.
func (s *Server) page(r *http.Request, title string, sections ...func(context.Context)) pages.Page {
	p := pages.Page{
		Title: title,
		Path:  r.URL.Path,
		Flash: pages.FlashFromQuery(r),
	}
	resolvers := append([]func(context.Context){
		func(ctx context.Context) { p.Chrome = s.catalog.Chrome(ctx, s.client) },
	}, sections...)
	content.Gather(r.Context(), resolvers...)
	return p
}

func (s *Server) home(w http.ResponseWriter, r *http.Request) {
	var d pages.HomeData
	p := s.page(r, "",
		func(ctx context.Context) { d.Services = s.catalog.Services.Resolve(ctx, s.client) },
		func(ctx context.Context) { d.Projects = s.catalog.Projects.Resolve(ctx, s.client) },
		func(ctx context.Context) { d.Team = s.catalog.TeamMembers.Resolve(ctx, s.client) },
	)
	pages.Render(r.Context(), w, http.StatusOK, pages.Home(r.Context(), p, d))
}

func (s *Server) about(w http.ResponseWriter, r *http.Request) {
	var team []content.TeamMember
	p := s.page(r, "About",
		func(ctx context.Context) { team = s.catalog.TeamMembers.Resolve(ctx, s.client) },
	)
	pages.Render(r.Context(), w, http.StatusOK, pages.About(r.Context(), p, team))
}

func (s *Server) services(w http.ResponseWriter, r *http.Request) {
	var list []content.Service
	p := s.page(r, "Services",
		func(ctx context.Context) { list = s.catalog.Services.Resolve(ctx, s.client) },
	)
	pages.Render(r.Context(), w, http.StatusOK, pages.Services(r.Context(), p, list))
}

func (s *Server) projects(w http.ResponseWriter, r *http.Request) {
	var list []content.Project
	p := s.page(r, "Projects",
		func(ctx context.Context) { list = s.catalog.Projects.Resolve(ctx, s.client) },
	)
	pages.Render(r.Context(), w, http.StatusOK, pages.Projects(r.Context(), p, list))
}

func (s *Server) blogs(w http.ResponseWriter, r *http.Request) {
	var posts []content.BlogPost
	p := s.page(r, "Blog",
		func(ctx context.Context) { posts = s.catalog.BlogPosts.Resolve(ctx, s.client) },
	)
	pages.Render(r.Context(), w, http.StatusOK, pages.Blogs(r.Context(), p, posts))
}

func (s *Server) contactPage(w http.ResponseWriter, r *http.Request) {
	p := s.page(r, "Contact")
	pages.Render(r.Context(), w, http.StatusOK, pages.Contact(r.Context(), p, contact.NewForm()))
}

// submitContact handles the HTML form post. The page is re-rendered in
// place: with inline errors on 422, cleared with a notice on success, and
// with the values kept when the backend fails or the client already has a
// submission outstanding.
func (s *Server) submitContact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	form := contact.NewForm()

	if err := r.ParseForm(); err != nil {
		p := s.page(r, "Contact")
		p.Flash = &pages.Flash{Kind: "error", Message: "Invalid form submission"}
		pages.Render(ctx, w, http.StatusBadRequest, pages.Contact(ctx, p, form))
		return
	}
	for _, field := range contact.Fields {
		form.Set(field, r.PostForm.Get(string(field)))
	}

	err := s.submissions.Submit(ctx, auth.ClientIP(r), form, s.client)
	p := s.page(r, "Contact")
	status := http.StatusOK
	switch {
	case err == nil:
		p.Flash = &pages.Flash{Kind: "success", Message: "Thank you! Your message has been sent."}
	case errors.Is(err, contact.ErrInvalid):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, contact.ErrInFlight):
		status = http.StatusConflict
		p.Flash = &pages.Flash{Kind: "error", Message: "Your previous message is still being sent. Please wait a moment."}
	default:
		status = http.StatusBadGateway
		p.Flash = &pages.Flash{Kind: "error", Message: "Failed to send message. Please try again later."}
	}
	pages.Render(ctx, w, status, pages.Contact(ctx, p, form))
}

func (s *Server) maintenancePage(w http.ResponseWriter, r *http.Request) {
	settings := s.catalog.SiteSettings.Resolve(r.Context(), s.client)
	pages.Render(r.Context(), w, http.StatusServiceUnavailable, pages.Maintenance(r.Context(), settings))
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	p := s.page(r, "Not found")
	pages.Render(r.Context(), w, http.StatusNotFound, pages.NotFound(r.Context(), p))
}

// paletteResponse is the palette plus whether it came from the backend.
type paletteResponse struct {
	theme.Palette
	State string `json:"state"`
}

func (s *Server) paletteAPI(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, paletteResponse{
		Palette: s.palette.Snapshot(),
		State:   s.palette.State().String(),
	})
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"palette":     s.palette.State().String(),
		"maintenance": s.poller.Enabled(),
	})
}

func robots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("User-agent: *\nDisallow: /admin/\nDisallow: /api/\n"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
