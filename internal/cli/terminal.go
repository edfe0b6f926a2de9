package cli

import (
	"encoding/base64"
	"fmt"
	"html/template"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ColorEnabled reports whether stdout is a terminal and NO_COLOR is unset.
func ColorEnabled() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) && strings.TrimSpace(os.Getenv("NO_COLOR")) == ""
}

type tone int

const (
	toneInfo tone = iota
	toneSuccess
	toneDanger
	toneWarn
)

// Terminal prints portal regions and alerts as plain text lines.
type Terminal struct {
	out   io.Writer
	color bool
}

func NewTerminal(out io.Writer, color bool) *Terminal {
	return &Terminal{out: out, color: color}
}

func (t *Terminal) style(tn tone) lipgloss.Style {
	s := lipgloss.NewStyle().TabWidth(lipgloss.NoTabConversion)
	if !t.color {
		return s
	}
	switch tn {
	case toneSuccess:
		return s.Foreground(lipgloss.Color("10")).Bold(true)
	case toneDanger:
		return s.Foreground(lipgloss.Color("9")).Bold(true)
	case toneWarn:
		return s.Foreground(lipgloss.Color("11"))
	default:
		return s.Faint(true)
	}
}

// println styles each line on its own so lipgloss does not pad lines to a
// common width.
func (t *Terminal) println(tn tone, text string) {
	st := t.style(tn)
	for _, line := range strings.Split(text, "\n") {
		fmt.Fprintln(t.out, st.Render(line))
	}
}

// Region returns a region that prints every replacement it receives.
func (t *Terminal) Region() *TextRegion {
	return &TextRegion{term: t}
}

// TextRegion keeps the last rendered text so callers can inspect it.
type TextRegion struct {
	term *Terminal
	last string
}

func (r *TextRegion) SetHTML(h template.HTML) {
	text, tn := htmlText(string(h))
	r.last = text
	if text == "" {
		return
	}
	r.term.println(tn, text)
}

// Text is the last text printed into the region.
func (r *TextRegion) Text() string { return r.last }

func (t *Terminal) Alert(msg string) {
	t.println(toneWarn, "! "+msg)
}

// ShowImage prints the media type and size of a data URL preview.
func (t *Terminal) ShowImage(src template.URL) {
	s := string(src)
	mediaType, payload, ok := strings.Cut(strings.TrimPrefix(s, "data:"), ";base64,")
	if !ok {
		t.println(toneInfo, "preview ready")
		return
	}
	size := uint64(base64.StdEncoding.DecodedLen(len(payload)))
	t.println(toneInfo, fmt.Sprintf("preview: %s, %s", mediaType, humanize.Bytes(size)))
}

// Field is a fixed text value that controllers may clear.
type Field struct{ value string }

func (f *Field) Value() string     { return f.value }
func (f *Field) SetValue(v string) { f.value = v }

// FileImage selects a file from disk.
type FileImage struct{ Path string }

func (f *FileImage) Selected() ([]byte, bool) {
	if f == nil || f.Path == "" {
		return nil, false
	}
	data, err := os.ReadFile(f.Path)
	if err != nil || len(data) == 0 {
		return nil, false
	}
	return data, true
}

// htmlText flattens a rendered fragment. Line breaks, blocks and table rows
// become newlines and table cells are tab separated. The tone comes from the
// first alert class found.
func htmlText(fragment string) (string, tone) {
	nodes, err := html.ParseFragment(strings.NewReader(fragment), &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
	})
	if err != nil {
		return strings.TrimSpace(fragment), toneInfo
	}

	tn, found := toneInfo, false
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			words := strings.Fields(n.Data)
			if len(words) == 0 || n.Data != strings.TrimLeftFunc(n.Data, unicode.IsSpace) {
				space(&b)
			}
			if len(words) > 0 {
				b.WriteString(strings.Join(words, " "))
				if n.Data != strings.TrimRightFunc(n.Data, unicode.IsSpace) {
					space(&b)
				}
			}
			return
		case html.ElementNode:
			if !found {
				if t, ok := classTone(n); ok {
					tn, found = t, true
				}
			}
			switch n.Data {
			case "br", "tr", "div", "p":
				newline(&b)
			case "td", "th":
				if !strings.HasSuffix(b.String(), "\n") && b.Len() > 0 {
					trimSpaceSuffix(&b)
					b.WriteByte('\t')
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range nodes {
		walk(n)
	}

	lines := strings.Split(b.String(), "\n")
	out := lines[:0]
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return strings.Join(out, "\n"), tn
}

func space(b *strings.Builder) {
	s := b.String()
	if s != "" && !strings.HasSuffix(s, " ") && !strings.HasSuffix(s, "\n") && !strings.HasSuffix(s, "\t") {
		b.WriteByte(' ')
	}
}

func newline(b *strings.Builder) {
	trimSpaceSuffix(b)
	if b.Len() > 0 && !strings.HasSuffix(b.String(), "\n") {
		b.WriteByte('\n')
	}
}

func trimSpaceSuffix(b *strings.Builder) {
	s := strings.TrimRight(b.String(), " ")
	if len(s) != b.Len() {
		b.Reset()
		b.WriteString(s)
	}
}

func classTone(n *html.Node) (tone, bool) {
	for _, a := range n.Attr {
		if a.Key != "class" {
			continue
		}
		switch {
		case strings.Contains(a.Val, "alert-success"):
			return toneSuccess, true
		case strings.Contains(a.Val, "alert-danger"):
			return toneDanger, true
		case strings.Contains(a.Val, "alert-warning"):
			return toneWarn, true
		case strings.Contains(a.Val, "alert-info"), strings.Contains(a.Val, "text-muted"):
			return toneInfo, true
		}
	}
	return toneInfo, false
}
