package report

import (
	"bytes"
	"fmt"
	"html"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/text/language"

	"github.com/deluair/BD-publicfinance-simulation/internal/config"
)

type htmlRenderer struct{}

func (htmlRenderer) Format() config.ReportFormat { return config.FormatHTML }
func (htmlRenderer) FileName() string            { return "report.html" }

func (htmlRenderer) Render(w io.Writer, doc Document) error {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	var body bytes.Buffer
	if err := md.Convert(MarkdownBody(doc, language.English), &body); err != nil {
		return fmt.Errorf("convert markdown: %w", err)
	}
	_, err := fmt.Fprintf(w, "<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n</head>\n<body>\n%s</body>\n</html>\n",
		html.EscapeString(title(doc)), body.String())
	return err
}
