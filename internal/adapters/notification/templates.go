package notification

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/rurasogoodo/notes_app/internal/core/domain"
)

// Message is a rendered notification, ready for a mail worker.
type Message struct {
	Template domain.NotificationTemplate `json:"template"`
	To       string                      `json:"to"`
	Subject  string                      `json:"subject"`
	HTMLBody string                      `json:"htmlBody"`
	TextBody string                      `json:"textBody"`
}

type templateSet struct {
	subject *texttemplate.Template
	text    *texttemplate.Template
	html    *htmltemplate.Template
}

var templateSources = map[domain.NotificationTemplate][3]string{
	domain.TemplateEmailVerification: {
		`Verify your email address`,
		`Hi {{ .Username | default "there" }},

Confirm your email address by opening the link below:
{{ .Link }}

If you did not create an account, ignore this message.`,
		`<p>Hi {{ .Username | default "there" }},</p>
<p>Confirm your email address by opening the link below:</p>
<p><a href="{{ .Link }}">Verify email</a></p>
<p>If you did not create an account, ignore this message.</p>`,
	},
	domain.TemplatePasswordReset: {
		`Reset your password`,
		`Hi {{ .Username | default "there" }},

Someone asked to reset the password for {{ .Recipient | lower }}.
Open the link below to choose a new one:
{{ .Link }}

If this was not you, no action is needed.`,
		`<p>Hi {{ .Username | default "there" }},</p>
<p>Someone asked to reset the password for {{ .Recipient | lower }}.</p>
<p><a href="{{ .Link }}">Choose a new password</a></p>
<p>If this was not you, no action is needed.</p>`,
	},
}

// Renderer turns notifications into messages using sprig-enabled templates.
type Renderer struct {
	sets map[domain.NotificationTemplate]templateSet
}

// NewRenderer parses every known template once.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{sets: make(map[domain.NotificationTemplate]templateSet, len(templateSources))}
	for name, src := range templateSources {
		subject, err := texttemplate.New(string(name) + ".subject").Funcs(sprig.TxtFuncMap()).Parse(src[0])
		if err != nil {
			return nil, fmt.Errorf("parse %s subject: %w", name, err)
		}
		text, err := texttemplate.New(string(name) + ".txt").Funcs(sprig.TxtFuncMap()).Parse(src[1])
		if err != nil {
			return nil, fmt.Errorf("parse %s text body: %w", name, err)
		}
		html, err := htmltemplate.New(string(name) + ".html").Funcs(sprig.FuncMap()).Parse(src[2])
		if err != nil {
			return nil, fmt.Errorf("parse %s html body: %w", name, err)
		}
		r.sets[name] = templateSet{subject: subject, text: text, html: html}
	}
	return r, nil
}

// Render builds the message for n.
func (r *Renderer) Render(n domain.Notification) (Message, error) {
	set, ok := r.sets[n.Template]
	if !ok {
		return Message{}, fmt.Errorf("unknown notification template %q", n.Template)
	}

	var subject, text, html bytes.Buffer
	if err := set.subject.Execute(&subject, n); err != nil {
		return Message{}, fmt.Errorf("render %s subject: %w", n.Template, err)
	}
	if err := set.text.Execute(&text, n); err != nil {
		return Message{}, fmt.Errorf("render %s text body: %w", n.Template, err)
	}
	if err := set.html.Execute(&html, n); err != nil {
		return Message{}, fmt.Errorf("render %s html body: %w", n.Template, err)
	}

	return Message{
		Template: n.Template,
		To:       n.Recipient,
		Subject:  subject.String(),
		TextBody: text.String(),
		HTMLBody: html.String(),
	}, nil
}
