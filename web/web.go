// Package web renders the server side form page.
package web

import (
	"bytes"
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// Page is the data behind index.html. At most one of Result and QRDataURI is
// set after a submission, neither is set on a plain GET.
type Page struct {
	Result    *string
	InputText string
	Tool      string
	QRDataURI template.URL
	Tools     []ToolOption
	Actions   []string
}

type ToolOption struct {
	Name    string
	Actions []string
}

func RenderIndex(p *Page) ([]byte, error) {
	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, p); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
