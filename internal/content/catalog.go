package content

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Section binds one consumer's endpoint, fallback list and post filter.
type Section[T any] struct {
	Name       string
	Endpoint   string
	Fallback   []T
	PostFilter func([]T) []T
}

// Resolve fetches the section, falling back to its static list on failure.
func (s Section[T]) Resolve(ctx context.Context, f Fetcher) []T {
	opts := []Option[T]{WithName[T](s.Name)}
	if s.PostFilter != nil {
		opts = append(opts, WithPostFilter(s.PostFilter))
	}
	return Resolve(ctx, f, s.Endpoint, s.Fallback, opts...)
}

// Single is a Section for endpoints that return one object.
type Single[T any] struct {
	Name     string
	Endpoint string
	Fallback T
}

// Resolve fetches the object, falling back to the static value on failure.
func (s Single[T]) Resolve(ctx context.Context, f Fetcher) T {
	return ResolveOne(ctx, f, s.Endpoint, s.Fallback, WithName[T](s.Name))
}

// Endpoints of the backend content API.
const (
	EndpointContactInfo  = "/contact-info"
	EndpointTeamMembers  = "/team-members"
	EndpointServices     = "/services"
	EndpointMenuItems    = "/menu-items"
	EndpointSiteSettings = "/site-settings"
	EndpointProjects     = "/projects"
	EndpointBlogPosts    = "/blog-posts"
	EndpointFooter       = "/footer-settings"
)

// Catalog holds every section the site renders.
type Catalog struct {
	ContactInfo  Section[ContactInfo]
	TeamMembers  Section[TeamMember]
	Services     Section[Service]
	MenuItems    Section[MenuItem]
	Projects     Section[Project]
	BlogPosts    Section[BlogPost]
	SiteSettings Single[SiteSettings]
	Footer       Single[FooterSettings]
}

// NewCatalog wires the sections to their endpoints and fallback data.
func NewCatalog(fb *Fallback) *Catalog {
	return &Catalog{
		ContactInfo: Section[ContactInfo]{
			Name: "contact_info", Endpoint: EndpointContactInfo,
			Fallback: fb.ContactInfo, PostFilter: ActiveOrdered[ContactInfo],
		},
		TeamMembers: Section[TeamMember]{
			Name: "team_members", Endpoint: EndpointTeamMembers,
			Fallback: fb.TeamMembers, PostFilter: ActiveOrdered[TeamMember],
		},
		Services: Section[Service]{
			Name: "services", Endpoint: EndpointServices,
			Fallback: fb.Services, PostFilter: ActiveOrdered[Service],
		},
		MenuItems: Section[MenuItem]{
			Name: "menu_items", Endpoint: EndpointMenuItems,
			Fallback: fb.MenuItems, PostFilter: ActiveOrdered[MenuItem],
		},
		Projects: Section[Project]{
			Name: "projects", Endpoint: EndpointProjects,
			Fallback: fb.Projects, PostFilter: ActiveOrdered[Project],
		},
		BlogPosts: Section[BlogPost]{
			Name: "blog_posts", Endpoint: EndpointBlogPosts,
			Fallback: fb.BlogPosts, PostFilter: ActiveNewestFirst,
		},
		SiteSettings: Single[SiteSettings]{
			Name: "site_settings", Endpoint: EndpointSiteSettings, Fallback: fb.SiteSettings,
		},
		Footer: Single[FooterSettings]{
			Name: "footer_settings", Endpoint: EndpointFooter, Fallback: fb.Footer,
		},
	}
}

// Chrome is the data every page layout needs.
type Chrome struct {
	Menu     []MenuItem
	Settings SiteSettings
	Contact  []ContactInfo
	Footer   FooterSettings
}

// Chrome resolves the layout sections concurrently.
func (c *Catalog) Chrome(ctx context.Context, f Fetcher) Chrome {
	var ch Chrome
	Gather(ctx,
		func(ctx context.Context) { ch.Menu = c.MenuItems.Resolve(ctx, f) },
		func(ctx context.Context) { ch.Settings = c.SiteSettings.Resolve(ctx, f) },
		func(ctx context.Context) { ch.Contact = c.ContactInfo.Resolve(ctx, f) },
		func(ctx context.Context) { ch.Footer = c.Footer.Resolve(ctx, f) },
	)
	return ch
}

// Gather runs the resolvers concurrently and waits for all of them. Each
// resolver owns its own fallback, so none can fail another.
func Gather(ctx context.Context, resolvers ...func(context.Context)) {
	var g errgroup.Group
	for _, resolve := range resolvers {
		g.Go(func() error {
			resolve(ctx)
			return nil
		})
	}
	_ = g.Wait()
}
