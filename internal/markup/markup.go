// Package markup turns dialog titles and bodies, which may be plain text,
// HTML fragments or whole HTML documents, into terminal text.
package markup

import (
	"strconv"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/x/ansi"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/muesli/reflow/wordwrap"
)

const defaultCacheSize = 64

// Renderer converts markup to styled terminal text and caches the results.
type Renderer struct {
	style     string
	cacheSize int
	cache     *lru.Cache[string, string]

	mu        sync.Mutex
	term      *glamour.TermRenderer
	termWidth int
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithStyle selects the glamour style: "auto", "dark", "light", "notty",
// or "plain" to skip glamour and use the lipgloss renderer.
func WithStyle(style string) Option {
	return func(r *Renderer) {
		r.style = style
	}
}

// WithCacheSize sets how many rendered results are kept.
func WithCacheSize(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.cacheSize = n
		}
	}
}

// New creates a Renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		style:     "auto",
		cacheSize: defaultCacheSize,
	}
	for _, o := range opts {
		o(r)
	}
	r.cache, _ = lru.New[string, string](r.cacheSize)
	return r
}

// Render converts src to terminal text wrapped at width.
func (r *Renderer) Render(src string, width int) string {
	if strings.TrimSpace(src) == "" {
		return ""
	}
	if width <= 0 {
		width = 80
	}

	key := strconv.Itoa(width) + "\x00" + src
	if out, ok := r.cache.Get(key); ok {
		return out
	}

	var out string
	if !IsMarkup(src) {
		out = wordwrap.String(strings.TrimSpace(src), width)
	} else {
		out = r.renderHTML(src, width)
	}
	r.cache.Add(key, out)
	return out
}

func (r *Renderer) renderHTML(src string, width int) string {
	if IsDocument(src) {
		if article, err := Extract(src); err == nil && strings.TrimSpace(article) != "" {
			src = article
		}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		return wordwrap.String(strings.TrimSpace(src), width)
	}
	body := doc.Find("body")

	if r.style != "plain" {
		md := (&mdConverter{}).convertBlocks(body)
		if out, err := r.renderWithGlamour(md, width); err == nil {
			return out
		}
	}
	return (&fallbackRenderer{width: width}).renderBlocks(body)
}

// renderWithGlamour reuses the glamour renderer while the width is unchanged.
func (r *Renderer) renderWithGlamour(md string, width int) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.term == nil || r.termWidth != width {
		styleOpt := glamour.WithAutoStyle()
		if r.style != "auto" && r.style != "" {
			styleOpt = glamour.WithStandardStyle(r.style)
		}
		term, err := glamour.NewTermRenderer(
			styleOpt,
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return "", err
		}
		r.term = term
		r.termWidth = width
	}

	out, err := r.term.Render(md)
	if err != nil {
		return "", err
	}
	return trimBlankLines(out), nil
}

// Inline reduces src to a single line of text, for titles and labels.
func Inline(src string) string {
	if !IsMarkup(src) {
		return strings.Join(strings.Fields(src), " ")
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		return strings.Join(strings.Fields(src), " ")
	}
	return strings.Join(strings.Fields(doc.Find("body").Text()), " ")
}

// IsMarkup reports whether src contains HTML tags.
func IsMarkup(src string) bool {
	i := strings.IndexByte(src, '<')
	return i >= 0 && strings.IndexByte(src[i:], '>') > 0
}

// IsDocument reports whether src is a complete HTML document rather than a fragment.
func IsDocument(src string) bool {
	head := strings.ToLower(strings.TrimSpace(src))
	return strings.HasPrefix(head, "<!doctype") || strings.HasPrefix(head, "<html")
}

// trimBlankLines drops visually empty lines at both ends of s.
func trimBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(ansi.Strip(lines[start])) == "" {
		start++
	}
	for end > start && strings.TrimSpace(ansi.Strip(lines[end-1])) == "" {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}
