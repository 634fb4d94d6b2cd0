package export

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/de-tools/deal-atlas/pkg/models/domain"
	"github.com/dustin/go-humanize"
)

// TextReporter renders reports as plain indented text.
type TextReporter struct {
	writer io.Writer
}

func NewTextReporter(writer io.Writer) *TextReporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &TextReporter{writer: writer}
}

const textTemplate = `
{{.Title}} ({{.GeneratedAt.Format "2006-01-02"}})
Total: {{.Currency}} {{money .TotalAmount}}
{{range .Sections}}
=== {{.Title}} ===
{{range $key, $value := .Summary}}{{$key}}: {{$value}}
{{end}}{{range .Details}}- {{.Name}}: {{.Value}}{{if .Unit}} {{.Unit}}{{end}}
  {{.Description}}
{{end}}{{range .Notes}}* {{.}}
{{end}}{{end}}`

func (c *TextReporter) Handle(report *domain.Report) error {
	t, err := template.New("report").
		Funcs(template.FuncMap{"money": humanize.Commaf}).
		Parse(textTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, report)
}
