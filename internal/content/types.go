package content

// Listable is implemented by records that carry an active flag and a display order.
type Listable interface {
	IsActive() bool
	SortOrder() int
}

// ContactInfo is one way of reaching the agency (email, phone, address, ...).
type ContactInfo struct {
	ID     int    `json:"id" yaml:"id"`
	Type   string `json:"type" yaml:"type"`
	Label  string `json:"label" yaml:"label"`
	Value  string `json:"value" yaml:"value"`
	Icon   string `json:"icon" yaml:"icon"`
	Order  int    `json:"order" yaml:"order"`
	Active bool   `json:"is_active" yaml:"is_active"`
}

// TeamMember is a person shown on the about page.
type TeamMember struct {
	ID       int    `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Role     string `json:"role" yaml:"role"`
	Bio      string `json:"bio" yaml:"bio"`
	Photo    string `json:"photo" yaml:"photo"`
	LinkedIn string `json:"linkedin" yaml:"linkedin"`
	Order    int    `json:"order" yaml:"order"`
	Active   bool   `json:"is_active" yaml:"is_active"`
}

// Service is an offering listed on the services page.
type Service struct {
	ID          int    `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Slug        string `json:"slug" yaml:"slug"`
	Description string `json:"description" yaml:"description"`
	Icon        string `json:"icon" yaml:"icon"`
	Order       int    `json:"order" yaml:"order"`
	Active      bool   `json:"is_active" yaml:"is_active"`
}

// MenuItem is a navigation link.
type MenuItem struct {
	ID     int    `json:"id" yaml:"id"`
	Label  string `json:"label" yaml:"label"`
	URL    string `json:"url" yaml:"url"`
	Order  int    `json:"order" yaml:"order"`
	Active bool   `json:"is_active" yaml:"is_active"`
}

// SiteSettings are the global strings used by the layout.
type SiteSettings struct {
	ID         int    `json:"id" yaml:"id"`
	SiteName   string `json:"site_name" yaml:"site_name"`
	Tagline    string `json:"tagline" yaml:"tagline"`
	FooterText string `json:"footer_text" yaml:"footer_text"`
	Copyright  string `json:"copyright" yaml:"copyright"`
	Email      string `json:"email" yaml:"email"`
	Phone      string `json:"phone" yaml:"phone"`
	Address    string `json:"address" yaml:"address"`
}

// Project is a portfolio entry.
type Project struct {
	ID      int    `json:"id" yaml:"id"`
	Title   string `json:"title" yaml:"title"`
	Slug    string `json:"slug" yaml:"slug"`
	Summary string `json:"summary" yaml:"summary"`
	Image   string `json:"image" yaml:"image"`
	Client  string `json:"client" yaml:"client"`
	URL     string `json:"url" yaml:"url"`
	Order   int    `json:"order" yaml:"order"`
	Active  bool   `json:"is_active" yaml:"is_active"`
}

// BlogPost is an entry on the blogs page.
type BlogPost struct {
	ID          int    `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Slug        string `json:"slug" yaml:"slug"`
	Excerpt     string `json:"excerpt" yaml:"excerpt"`
	Author      string `json:"author" yaml:"author"`
	PublishedAt string `json:"published_at" yaml:"published_at"` // RFC 3339
	Active      bool   `json:"is_active" yaml:"is_active"`
}

// SocialLink is a footer link to an external profile.
type SocialLink struct {
	Platform string `json:"platform" yaml:"platform"`
	URL      string `json:"url" yaml:"url"`
}

// FooterSettings drive the footer and its newsletter block. Edited from the admin console.
type FooterSettings struct {
	AboutText         string       `json:"about_text" yaml:"about_text"`
	NewsletterHeading string       `json:"newsletter_heading" yaml:"newsletter_heading"`
	NewsletterEnabled bool         `json:"newsletter_enabled" yaml:"newsletter_enabled"`
	SocialLinks       []SocialLink `json:"social_links" yaml:"social_links"`
}

func (c ContactInfo) IsActive() bool { return c.Active }
func (c ContactInfo) SortOrder() int { return c.Order }
func (m TeamMember) IsActive() bool  { return m.Active }
func (m TeamMember) SortOrder() int  { return m.Order }
func (s Service) IsActive() bool     { return s.Active }
func (s Service) SortOrder() int     { return s.Order }
func (m MenuItem) IsActive() bool    { return m.Active }
func (m MenuItem) SortOrder() int    { return m.Order }
func (p Project) IsActive() bool     { return p.Active }
func (p Project) SortOrder() int     { return p.Order }

// NewsletterSubscriber is a footer newsletter sign-up, listed in the admin console.
type NewsletterSubscriber struct {
	ID           int    `json:"id"`
	Email        string `json:"email"`
	SubscribedAt string `json:"subscribed_at"`
}
