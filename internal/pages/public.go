package pages

import (
	"context"
	"time"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"inno8-site/internal/content"
)

// HomeData are the sections shown on the landing page.
type HomeData struct {
	Services []content.Service
	Projects []content.Project
	Team     []content.TeamMember
}

// Home renders the landing page.
func Home(ctx context.Context, p Page, d HomeData) g.Node {
	s := p.Chrome.Settings
	return Layout(ctx, p,
		h.Section(h.Class("hero"),
			h.H1(g.Text(s.SiteName)),
			h.P(h.Class("tagline"), g.Text(s.Tagline)),
			h.A(h.Class("button"), h.Href("/contact"), g.Text("Start a project")),
		),
		h.Section(h.Class("services"),
			h.H2(g.Text("What we do")),
			serviceList(d.Services),
		),
		h.Section(h.Class("projects"),
			h.H2(g.Text("Recent work")),
			projectList(d.Projects),
		),
		h.Section(h.Class("team"),
			h.H2(g.Text("Meet the team")),
			teamList(d.Team, false),
		),
	)
}

// About renders the about page.
func About(ctx context.Context, p Page, team []content.TeamMember) g.Node {
	return Layout(ctx, p,
		h.Section(h.Class("about"),
			h.H1(g.Text("About "+p.Chrome.Settings.SiteName)),
			h.P(g.Text(p.Chrome.Settings.Tagline)),
		),
		h.Section(h.Class("team"),
			h.H2(g.Text("Our team")),
			teamList(team, true),
		),
	)
}

// Services renders the services page.
func Services(ctx context.Context, p Page, services []content.Service) g.Node {
	return Layout(ctx, p,
		h.H1(g.Text("Services")),
		serviceList(services),
	)
}

// Projects renders the portfolio page.
func Projects(ctx context.Context, p Page, projects []content.Project) g.Node {
	return Layout(ctx, p,
		h.H1(g.Text("Projects")),
		projectList(projects),
	)
}

// Blogs renders the blog index.
func Blogs(ctx context.Context, p Page, posts []content.BlogPost) g.Node {
	return Layout(ctx, p,
		h.H1(g.Text("Blog")),
		empty(len(posts) == 0, "No posts yet."),
		h.Div(h.Class("posts"), g.Map(posts, func(post content.BlogPost) g.Node {
			return h.Article(h.Class("post"), h.ID("post-"+post.Slug),
				h.H2(g.Text(post.Title)),
				h.P(h.Class("meta"), g.Text(postMeta(post))),
				h.P(g.Text(post.Excerpt)),
			)
		})),
	)
}

// Maintenance renders the page served while the backend is in maintenance.
func Maintenance(ctx context.Context, settings content.SiteSettings) g.Node {
	return Layout(ctx, Page{Title: "Maintenance", Chrome: content.Chrome{Settings: settings}},
		h.Section(h.Class("maintenance"),
			h.H1(g.Text("We'll be back soon")),
			h.P(g.Text(settings.SiteName+" is undergoing scheduled maintenance. Please check back shortly.")),
		),
	)
}

// NotFound renders the 404 page.
func NotFound(ctx context.Context, p Page) g.Node {
	return Layout(ctx, p,
		h.H1(g.Text("Page not found")),
		h.P(h.A(h.Href("/"), g.Text("Back to home"))),
	)
}

func serviceList(services []content.Service) g.Node {
	return h.Div(h.Class("service-list"),
		empty(len(services) == 0, "No services to show."),
		g.Map(services, func(s content.Service) g.Node {
			return h.Article(h.Class("service"), h.ID("service-"+s.Slug), h.Data("icon", s.Icon),
				h.H3(g.Text(s.Title)),
				h.P(g.Text(s.Description)),
			)
		}),
	)
}

func projectList(projects []content.Project) g.Node {
	return h.Div(h.Class("project-list"),
		empty(len(projects) == 0, "No projects to show."),
		g.Map(projects, func(pr content.Project) g.Node {
			return h.Article(h.Class("project"), h.ID("project-"+pr.Slug),
				g.If(pr.Image != "", h.Img(h.Src(pr.Image), h.Alt(pr.Title), g.Attr("loading", "lazy"))),
				h.H3(g.Text(pr.Title)),
				g.If(pr.Client != "", h.P(h.Class("client"), g.Text(pr.Client))),
				h.P(g.Text(pr.Summary)),
				g.If(pr.URL != "", h.A(h.Href(pr.URL), h.Rel("noopener"), g.Text("View project"))),
			)
		}),
	)
}

func teamList(team []content.TeamMember, withBio bool) g.Node {
	return h.Div(h.Class("team-list"),
		g.Map(team, func(m content.TeamMember) g.Node {
			return h.Article(h.Class("member"),
				g.If(m.Photo != "", h.Img(h.Src(m.Photo), h.Alt(m.Name), g.Attr("loading", "lazy"))),
				h.H3(g.Text(m.Name)),
				h.P(h.Class("role"), g.Text(m.Role)),
				g.If(withBio && m.Bio != "", h.P(g.Text(m.Bio))),
				g.If(m.LinkedIn != "", h.A(h.Href(m.LinkedIn), h.Rel("noopener"), g.Text("LinkedIn"))),
			)
		}),
	)
}

func postMeta(post content.BlogPost) string {
	date := post.PublishedAt
	if t, err := time.Parse(time.RFC3339, post.PublishedAt); err == nil {
		date = t.Format("January 2, 2006")
	}
	if post.Author == "" {
		return date
	}
	return post.Author + " · " + date
}

func empty(cond bool, msg string) g.Node {
	return g.If(cond, h.P(h.Class("empty"), g.Text(msg)))
}
