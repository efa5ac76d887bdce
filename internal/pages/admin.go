package pages

import (
	"context"
	"strconv"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"inno8-site/internal/content"
	"inno8-site/internal/theme"
)

// AdminFooterData drives the footer settings console.
type AdminFooterData struct {
	Footer          content.FooterSettings
	Subscribers     []content.NewsletterSubscriber
	MaintenanceMode bool
	Notice          string // set when backend data could not be loaded
	Flash           *Flash
}

func adminShell(ctx context.Context, title string, f *Flash, body ...g.Node) g.Node {
	palette := theme.FromContext(ctx)
	return h.Doctype(
		h.HTML(h.Lang("en"),
			h.Head(
				h.Meta(h.Charset("utf-8")),
				h.Meta(h.Name("robots"), h.Content("noindex")),
				h.TitleEl(g.Text(title+" | Inno8 Admin")),
				h.Link(h.Rel("stylesheet"), h.Href("/static/site.css")),
				h.StyleEl(g.Raw(palette.CSSVariables())),
			),
			h.Body(h.Class("admin"),
				flash(f),
				h.Main(g.Group(body)),
			),
		),
	)
}

// AdminLogin renders the console sign-in form.
func AdminLogin(ctx context.Context, username, errMsg string) g.Node {
	var f *Flash
	if errMsg != "" {
		f = &Flash{Kind: "error", Message: errMsg}
	}
	return adminShell(ctx, "Sign in", f,
		h.H1(g.Text("Admin sign in")),
		h.Form(h.Action("/admin/login"), h.Method("post"),
			h.Label(h.For("username"), g.Text("Username")),
			h.Input(h.ID("username"), h.Name("username"), h.Type("text"), h.Value(username), h.Required()),
			h.Label(h.For("password"), g.Text("Password")),
			h.Input(h.ID("password"), h.Name("password"), h.Type("password"), h.Required()),
			h.Button(h.Type("submit"), g.Text("Sign in")),
		),
	)
}

// AdminFooter renders the footer settings, subscriber list and maintenance toggle.
func AdminFooter(ctx context.Context, d AdminFooterData) g.Node {
	ft := d.Footer
	return adminShell(ctx, "Footer", d.Flash,
		h.Header(
			h.H1(g.Text("Footer & newsletter")),
			h.Form(h.Action("/admin/logout"), h.Method("post"),
				h.Button(h.Type("submit"), g.Text("Sign out")),
			),
		),
		g.If(d.Notice != "", h.P(h.Class("notice"), g.Text(d.Notice))),

		h.Section(h.ID("maintenance"),
			h.H2(g.Text("Maintenance mode")),
			h.P(g.Text("Currently "), h.Strong(g.Text(onOff(d.MaintenanceMode)))),
			h.Form(h.Action("/admin/maintenance"), h.Method("post"),
				h.Input(h.Type("hidden"), h.Name("maintenance_mode"), h.Value(strconv.FormatBool(!d.MaintenanceMode))),
				h.Button(h.Type("submit"), g.Text("Turn "+onOff(!d.MaintenanceMode))),
			),
		),

		h.Section(h.ID("footer-settings"),
			h.H2(g.Text("Footer settings")),
			h.Form(h.Action("/admin/footer"), h.Method("post"),
				h.Label(h.For("about_text"), g.Text("About text")),
				h.Textarea(h.ID("about_text"), h.Name("about_text"), h.Rows("4"), g.Text(ft.AboutText)),
				h.Label(h.For("newsletter_heading"), g.Text("Newsletter heading")),
				h.Input(h.ID("newsletter_heading"), h.Name("newsletter_heading"), h.Type("text"), h.Value(ft.NewsletterHeading)),
				h.Label(
					h.Input(h.Name("newsletter_enabled"), h.Type("checkbox"), h.Value("true"), g.If(ft.NewsletterEnabled, h.Checked())),
					g.Text(" Newsletter enabled"),
				),
				h.FieldSet(
					h.Legend(g.Text("Social links")),
					g.Map(socialRows(ft.SocialLinks), func(row indexedLink) g.Node {
						i := strconv.Itoa(row.i)
						return h.Div(h.Class("social-row"),
							h.Input(h.Name("social_platform_"+i), h.Type("text"), h.Placeholder("Platform"), h.Value(row.link.Platform)),
							h.Input(h.Name("social_url_"+i), h.Type("url"), h.Placeholder("https://"), h.Value(row.link.URL)),
						)
					}),
				),
				h.Button(h.Type("submit"), g.Text("Save")),
			),
		),

		h.Section(h.ID("subscribers"),
			h.H2(g.Textf("Newsletter subscribers (%d)", len(d.Subscribers))),
			empty(len(d.Subscribers) == 0, "No subscribers yet."),
			g.If(len(d.Subscribers) > 0, h.Table(
				h.THead(h.Tr(h.Th(g.Text("Email")), h.Th(g.Text("Subscribed")))),
				h.TBody(g.Map(d.Subscribers, func(s content.NewsletterSubscriber) g.Node {
					return h.Tr(h.Td(g.Text(s.Email)), h.Td(g.Text(s.SubscribedAt)))
				})),
			)),
		),
	)
}

// MaxSocialLinks is how many social link rows the footer form offers.
const MaxSocialLinks = 6

type indexedLink struct {
	i    int
	link content.SocialLink
}

// socialRows pads links with empty rows up to MaxSocialLinks.
func socialRows(links []content.SocialLink) []indexedLink {
	rows := make([]indexedLink, 0, MaxSocialLinks)
	for i := range max(len(links), MaxSocialLinks) {
		var l content.SocialLink
		if i < len(links) {
			l = links[i]
		}
		rows = append(rows, indexedLink{i: i, link: l})
	}
	return rows
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
