package components

import (
	"github.com/raphaelgruber/aisite-go/internal/client"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// NoticeKind selects the alert style of a form notice.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeWarning NoticeKind = "warning"
	NoticeError   NoticeKind = "error"
)

// Notice is the feedback shown above the contact form after a submit.
type Notice struct {
	Kind    NoticeKind
	Title   string
	Message string
}

// ContactForm renders the lead form, prefilled with the last submitted values.
func ContactForm(values client.Lead, notice *Notice) g.Node {
	mode := values.FormType
	if mode == "" {
		mode = client.ModeMessage
	}

	return Section(
		ID("contact"),
		Class("section contact"),
		Div(
			Class("section-heading"),
			P(Class("muted"), g.Text("Let's talk")),
			H2(g.Text("Contact us")),
		),
		g.Iff(notice != nil, func() g.Node { return NoticeBox(notice) }),
		Form(
			Method("post"),
			Action("/contact#contact"),
			Class("contact-form"),
			FieldSet(
				Class("mode-switch"),
				Legend(g.Text("How should we reach you?")),
				modeRadio(client.ModeMessage, "Send a message", mode),
				modeRadio(client.ModeAppointment, "Book a callback", mode),
			),
			Label(For("service"), g.Text("Topic")),
			Select(
				ID("service"), Name("service"), Required(),
				Option(Value(""), g.Text("Choose a topic")),
				g.Map(client.Services, func(s client.Service) g.Node {
					return Option(Value(string(s.ID)), g.If(s.ID == values.Service, Selected()), g.Text(s.Label))
				}),
			),
			textField("name", "Name", "text", values.Name, true),
			textField("email", "Email", "email", values.Email, true),
			textField("phone", "Phone", "tel", values.Phone, false),
			textField("company", "Company", "text", values.Company, false),
			Div(
				Class("callback-slot"),
				textField("date", "Preferred date", "date", values.Date, false),
				textField("time", "Preferred time", "time", values.Time, false),
			),
			Label(For("message"), g.Text("Message")),
			Textarea(ID("message"), Name("message"), Rows("4"), Required(), g.Text(values.Message)),
			Input(Type("hidden"), Name("timezone"), Value(values.Timezone), g.Attr("data-timezone", "")),
			Button(Type("submit"), Class("btn btn-primary"), g.Text("Send")),
		),
	)
}

// NoticeBox renders a submit notice as an alert box. n must not be nil.
func NoticeBox(n *Notice) g.Node {
	return Div(
		Class("notice notice-"+string(n.Kind)),
		g.Attr("role", "alert"),
		Strong(g.Text(n.Title)),
		g.If(n.Message != "", P(g.Text(n.Message))),
	)
}

func modeRadio(mode client.FormMode, label string, current client.FormMode) g.Node {
	id := "mode-" + string(mode)
	return Label(
		For(id),
		Input(ID(id), Type("radio"), Name("formType"), Value(string(mode)), g.If(mode == current, Checked())),
		g.Text(label),
	)
}

func textField(name, label, typ, value string, required bool) g.Node {
	return Div(
		Class("field"),
		Label(For(name), g.Text(label)),
		Input(ID(name), Name(name), Type(typ), Value(value), g.If(required, Required())),
	)
}
