// Package templates renders the account emails embedded in the binary.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"

	"github.com/dompet/ledger/internal/domain/entity"
	domainerror "github.com/dompet/ledger/internal/domain/error"
)

//go:embed *.html *.txt
var templateFS embed.FS

// Renderer executes the html and plain-text template of an email kind.
type Renderer struct {
	html *htmltemplate.Template
	text *texttemplate.Template
}

// view is what every template sees.
type view struct {
	Recipient string
	Link      string
	ValidFor  string
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	html, err := htmltemplate.ParseFS(templateFS, "*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML templates: %w", err)
	}
	text, err := texttemplate.ParseFS(templateFS, "*.txt")
	if err != nil {
		return nil, fmt.Errorf("failed to parse text templates: %w", err)
	}
	return &Renderer{html: html, text: text}, nil
}

// Render produces both bodies for a job's kind and data.
func (r *Renderer) Render(kind entity.EmailKind, data map[string]string) (string, string, error) {
	htmlTmpl := r.html.Lookup(string(kind) + ".html")
	textTmpl := r.text.Lookup(string(kind) + ".txt")
	if htmlTmpl == nil || textTmpl == nil {
		return "", "", domainerror.NewEmailError(
			domainerror.ErrCodeUnknownEmailKind,
			fmt.Sprintf("no template for %q", kind),
			domainerror.ErrUnknownEmailKind,
		)
	}

	v := view{
		Recipient: data[entity.EmailDataRecipient],
		Link:      data[entity.EmailDataLink],
		ValidFor:  data[entity.EmailDataValidFor],
	}

	var html, text bytes.Buffer
	if err := htmlTmpl.Execute(&html, v); err != nil {
		return "", "", renderError(kind, err)
	}
	if err := textTmpl.Execute(&text, v); err != nil {
		return "", "", renderError(kind, err)
	}
	return html.String(), text.String(), nil
}

func renderError(kind entity.EmailKind, err error) error {
	return domainerror.NewEmailError(
		domainerror.ErrCodeEmailRenderFailed,
		fmt.Sprintf("failed to render %s", kind),
		fmt.Errorf("%w: %v", domainerror.ErrEmailRenderFailed, err),
	)
}
