// Package theme resolves the site color palette and hands it to views.
package theme

import (
	"fmt"
	"strings"
)

// Palette is the four-color site theme. Values are always "#rrggbb".
type Palette struct {
	Primary   string `json:"primary_color"`
	Secondary string `json:"secondary_color"`
	Accent    string `json:"accent_color"`
	Light     string `json:"light_color"`
}

// DefaultPalette is served until the backend palette resolves, and for the
// whole process lifetime if it never does.
var DefaultPalette = Palette{
	Primary:   "#0477BF",
	Secondary: "#012340",
	Accent:    "#FCB316",
	Light:     "#048ABF",
}

// Normalize runs every slot through ValidateColor.
func (p Palette) Normalize() Palette {
	return Palette{
		Primary:   ValidateColor(p.Primary),
		Secondary: ValidateColor(p.Secondary),
		Accent:    ValidateColor(p.Accent),
		Light:     ValidateColor(p.Light),
	}
}

// CSSVariables renders the palette as custom properties on :root.
func (p Palette) CSSVariables() string {
	var b strings.Builder
	b.WriteString(":root{")
	for _, v := range []struct{ name, value string }{
		{"primary", p.Primary},
		{"secondary", p.Secondary},
		{"accent", p.Accent},
		{"light", p.Light},
	} {
		fmt.Fprintf(&b, "--color-%s:%s;", v.name, ValidateColor(v.value))
	}
	b.WriteString("}")
	return b.String()
}
