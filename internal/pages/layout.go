// Package pages renders the site's HTML views with gomponents.
package pages

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"inno8-site/internal/content"
	xlog "inno8-site/internal/log"
	"inno8-site/internal/scroll"
	"inno8-site/internal/theme"
)

// Flash is a one-off notice shown above the page body.
type Flash struct {
	Kind    string // "success" or "error"
	Message string
}

// Page carries the data every layout needs.
type Page struct {
	Title  string
	Path   string
	Chrome content.Chrome
	Flash  *Flash
}

// Render writes n as an HTML response.
func Render(ctx context.Context, w http.ResponseWriter, status int, n g.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := n.Render(w); err != nil {
		l := xlog.FromContext(ctx, "pages")
		l.Error().Err(err).Msg("failed to render page")
	}
}

// Layout wraps body in the document shell: palette variables, navigation,
// footer and the back-to-top control.
func Layout(ctx context.Context, p Page, body ...g.Node) g.Node {
	palette := theme.FromContext(ctx)
	settings := p.Chrome.Settings

	title := settings.SiteName
	if p.Title != "" {
		title = p.Title + " | " + settings.SiteName
	}

	return h.Doctype(
		h.HTML(h.Lang("en"),
			h.Head(
				h.Meta(h.Charset("utf-8")),
				h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1")),
				h.TitleEl(g.Text(title)),
				h.Link(h.Rel("stylesheet"), h.Href("/static/site.css")),
				h.StyleEl(g.Raw(palette.CSSVariables())),
			),
			h.Body(
				header(p),
				flash(p.Flash),
				h.Main(h.ID("main"), g.Group(body)),
				footer(p.Chrome),
				BackToTop(scroll.Compute(0, 0, 0)),
				h.Script(h.Src("/static/scroll.js"), h.Defer()),
			),
		),
	)
}

func header(p Page) g.Node {
	return h.Header(h.Class("site-header"),
		h.A(h.Class("brand"), h.Href("/"), g.Text(p.Chrome.Settings.SiteName)),
		h.Nav(
			h.Ul(g.Map(p.Chrome.Menu, func(m content.MenuItem) g.Node {
				return h.Li(
					h.A(h.Href(m.URL), g.If(isCurrent(p.Path, m.URL), h.Aria("current", "page")), g.Text(m.Label)),
				)
			})),
		),
	)
}

func isCurrent(path, url string) bool {
	if url == "/" {
		return path == "/"
	}
	return path == url || strings.HasPrefix(path, url+"/")
}

func flash(f *Flash) g.Node {
	if f == nil || f.Message == "" {
		return nil
	}
	return h.Div(h.Class("flash flash-"+f.Kind), h.Role("status"), g.Text(f.Message))
}

func footer(c content.Chrome) g.Node {
	s := c.Settings
	return h.Footer(h.Class("site-footer"),
		h.Section(h.Class("footer-about"),
			h.H2(g.Text(s.SiteName)),
			h.P(g.Text(firstNonEmpty(c.Footer.AboutText, s.FooterText))),
		),
		h.Section(h.Class("footer-contact"),
			h.H2(g.Text("Contact")),
			h.Ul(g.Map(c.Contact, func(ci content.ContactInfo) g.Node {
				return h.Li(h.Data("type", ci.Type), h.Strong(g.Text(ci.Label+": ")), g.Text(ci.Value))
			})),
		),
		g.If(c.Footer.NewsletterEnabled, newsletterForm(c.Footer.NewsletterHeading)),
		h.Ul(h.Class("social"), g.Map(c.Footer.SocialLinks, func(l content.SocialLink) g.Node {
			return h.Li(h.A(h.Href(l.URL), h.Rel("noopener"), h.Target("_blank"), g.Text(l.Platform)))
		})),
		h.P(h.Class("copyright"), g.Textf("© %d %s", time.Now().Year(), s.Copyright)),
	)
}

func newsletterForm(heading string) g.Node {
	return h.Section(h.Class("newsletter"),
		h.H2(g.Text(firstNonEmpty(heading, "Subscribe to our newsletter"))),
		h.Form(h.Action("/newsletter"), h.Method("post"),
			h.Input(h.Type("email"), h.Name("email"), h.Placeholder("you@example.com"), h.Required()),
			h.Button(h.Type("submit"), g.Text("Subscribe")),
		),
	)
}

// BackToTop renders the scroll progress control in its initial state. The
// page script keeps the data attributes current while scrolling.
func BackToTop(ind scroll.Indicator) g.Node {
	return h.Button(h.ID("back-to-top"), h.Type("button"),
		h.Class("back-to-top"),
		h.Aria("label", "Back to top"),
		h.Data("progress", fmt.Sprintf("%.0f", ind.Progress)),
		h.Data("visible", fmt.Sprintf("%t", ind.Visible)),
		g.If(!ind.Visible, g.Attr("hidden")),
		g.Text("↑"),
	)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
