package portal

import (
	"bytes"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Page is the data of a full portal page.
type Page struct {
	Title    string
	Alert    string
	Regions  map[string]template.HTML
	Values   map[string]string
	Disabled map[string]bool
	Image    template.URL
}

// Renderer produces escaped markup for result regions and portal pages.
type Renderer struct {
	tmpl     *template.Template
	printer  *message.Printer
	lang     language.Tag
	currency string
}

// NewRenderer parses the embedded templates. Amounts are grouped for locale and
// suffixed with currency.
func NewRenderer(locale, currency string) (*Renderer, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("portal locale %q: %w", locale, err)
	}
	r := &Renderer{
		printer:  message.NewPrinter(tag),
		lang:     tag,
		currency: strings.TrimSpace(currency),
	}
	r.tmpl, err = template.New("portal").Funcs(template.FuncMap{
		"money": r.Money,
		"lang":  r.lang.String,
	}).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return r, nil
}

// DefaultRenderer renders English grouping with the VNĐ label.
func DefaultRenderer() *Renderer {
	r, err := NewRenderer("en", "VNĐ")
	if err != nil {
		panic(err)
	}
	return r
}

// Money formats amount with locale grouping followed by the currency label, e.g. "20,000 VNĐ".
func (r *Renderer) Money(amount int64) string {
	s := r.printer.Sprintf("%d", amount)
	if r.currency == "" {
		return s
	}
	return s + " " + r.currency
}

// Fragment renders a named fragment. A template failure renders as an error box.
func (r *Renderer) Fragment(name string, data any) template.HTML {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return template.HTML(`<div class="alert alert-danger">Render error.</div>`)
	}
	return template.HTML(buf.String())
}

// Page writes the page template "page:<name>".
func (r *Renderer) Page(w io.Writer, name string, p Page) error {
	return r.tmpl.ExecuteTemplate(w, "page:"+name, p)
}

// PreviewURL returns a data URL for image bytes. Other content is refused.
func PreviewURL(data []byte) (template.URL, bool) {
	if len(data) == 0 {
		return "", false
	}
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", false
	}
	return template.URL("data:" + mt.String() + ";base64," + base64.StdEncoding.EncodeToString(data)), true
}
