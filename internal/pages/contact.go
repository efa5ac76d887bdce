package pages

import (
	"context"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"inno8-site/internal/contact"
	"inno8-site/internal/content"
)

type fieldSpec struct {
	field     contact.Field
	label     string
	inputType string
	multiline bool
}

var contactFields = []fieldSpec{
	{contact.FieldName, "Name", "text", false},
	{contact.FieldEmail, "Email", "email", false},
	{contact.FieldPhone, "Phone", "tel", false},
	{contact.FieldSubject, "Subject", "text", false},
	{contact.FieldAddress, "Address", "text", false},
	{contact.FieldMessage, "Message", "", true},
}

// Contact renders the contact page with the form's current values, inline
// errors and valid markers.
func Contact(ctx context.Context, p Page, form *contact.Form) g.Node {
	errs := form.Errors()
	valid := form.Valid()

	return Layout(ctx, p,
		h.H1(g.Text("Contact us")),
		h.Ul(h.Class("contact-info"), g.Map(p.Chrome.Contact, func(ci content.ContactInfo) g.Node {
			return h.Li(h.Strong(g.Text(ci.Label+": ")), g.Text(ci.Value))
		})),
		h.Form(h.ID("contact-form"), h.Action("/contact"), h.Method("post"), g.Attr("novalidate"),
			g.Map(contactFields, func(f fieldSpec) g.Node {
				return formField(f, form.Value(f.field), errs[f.field], valid[f.field])
			}),
			h.Button(h.Type("submit"), g.Text("Send message")),
		),
		h.Script(h.Src("/static/contact.js"), h.Defer()),
	)
}

func formField(f fieldSpec, value, errMsg string, valid bool) g.Node {
	id := "contact-" + string(f.field)
	state := ""
	switch {
	case errMsg != "":
		state = "invalid"
	case valid:
		state = "valid"
	}

	var input g.Node
	attrs := g.Group{
		h.ID(id),
		h.Name(string(f.field)),
		g.If(contact.Required(f.field), h.Required()),
		g.If(errMsg != "", h.Aria("invalid", "true")),
		g.If(errMsg != "", h.Aria("describedby", id+"-error")),
	}
	if f.multiline {
		input = h.Textarea(attrs, h.Rows("6"), g.Text(value))
	} else {
		input = h.Input(attrs, h.Type(f.inputType), h.Value(value))
	}

	return h.Div(h.Class("field"), g.If(state != "", h.Data("state", state)),
		h.Label(h.For(id), g.Text(f.label)),
		input,
		g.If(errMsg != "", h.P(h.ID(id+"-error"), h.Class("field-error"), g.Text(errMsg))),
	)
}
