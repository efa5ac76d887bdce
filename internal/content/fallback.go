package content

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed fallback.yaml
var fallbackYAML []byte

// Fallback is the static content served when the backend is unavailable.
type Fallback struct {
	ContactInfo  []ContactInfo  `yaml:"contact_info"`
	TeamMembers  []TeamMember   `yaml:"team_members"`
	Services     []Service      `yaml:"services"`
	MenuItems    []MenuItem     `yaml:"menu_items"`
	Projects     []Project      `yaml:"projects"`
	BlogPosts    []BlogPost     `yaml:"blog_posts"`
	SiteSettings SiteSettings   `yaml:"site_settings"`
	Footer       FooterSettings `yaml:"footer"`
}

// LoadFallback decodes the embedded fallback document.
func LoadFallback() (*Fallback, error) {
	return ParseFallback(fallbackYAML)
}

// ParseFallback decodes a fallback document.
func ParseFallback(data []byte) (*Fallback, error) {
	var fb Fallback
	if err := yaml.Unmarshal(data, &fb); err != nil {
		return nil, fmt.Errorf("failed to parse fallback content: %w", err)
	}
	if fb.SiteSettings.SiteName == "" {
		return nil, fmt.Errorf("failed to parse fallback content: site_settings.site_name is required")
	}
	return &fb, nil
}
