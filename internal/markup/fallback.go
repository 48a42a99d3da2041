package markup

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wordwrap"
	"github.com/vidyasagar/tpopup/internal/theme"
)

// fallbackRenderer draws HTML with lipgloss directly. It is used when
// glamour is disabled or fails.
type fallbackRenderer struct {
	width int
}

func (r *fallbackRenderer) renderBlocks(s *goquery.Selection) string {
	var blocks []string
	var para strings.Builder
	flush := func() {
		if text := strings.TrimSpace(para.String()); text != "" {
			blocks = append(blocks, r.paragraph(text))
		}
		para.Reset()
	}

	s.Contents().Each(func(i int, child *goquery.Selection) {
		if inlineTags[goquery.NodeName(child)] {
			r.renderInline(child, &para)
			return
		}
		flush()
		if out := r.renderNode(child); out != "" {
			blocks = append(blocks, out)
		}
	})
	flush()
	return strings.Join(blocks, "\n\n")
}

func (r *fallbackRenderer) renderNode(s *goquery.Selection) string {
	t := theme.Current

	switch goquery.NodeName(s) {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		text := strings.TrimSpace(s.Text())
		if text == "" {
			return ""
		}
		return lipgloss.NewStyle().Bold(true).Foreground(t.Heading).Render(text)
	case "p":
		var sb strings.Builder
		r.renderInline(s, &sb)
		return r.paragraph(strings.TrimSpace(sb.String()))
	case "ul", "ol":
		return r.renderList(s, goquery.NodeName(s) == "ol")
	case "blockquote":
		return lipgloss.NewStyle().
			Foreground(t.Quote).
			Italic(true).
			PaddingLeft(1).
			BorderLeft(true).
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(t.Accent).
			Render(wordwrap.String(strings.TrimSpace(s.Text()), r.width-3))
	case "pre":
		return lipgloss.NewStyle().
			Foreground(t.Code).
			Background(t.CodeBg).
			Padding(0, 1).
			Render(strings.TrimRight(s.Text(), "\n"))
	case "hr":
		return lipgloss.NewStyle().Foreground(t.Border).Render(strings.Repeat("─", r.width))
	case "div", "article", "section", "main", "header", "footer", "figure":
		return r.renderBlocks(s)
	case "#comment", "script", "style":
		return ""
	default:
		return r.paragraph(strings.TrimSpace(s.Text()))
	}
}

func (r *fallbackRenderer) paragraph(text string) string {
	if text == "" {
		return ""
	}
	return lipgloss.NewStyle().Foreground(theme.Current.Text).Render(wordwrap.String(text, r.width))
}

func (r *fallbackRenderer) renderInline(s *goquery.Selection, sb *strings.Builder) {
	t := theme.Current

	switch goquery.NodeName(s) {
	case "#text":
		sb.WriteString(collapseSpace(s.Text()))
	case "strong", "b":
		sb.WriteString(lipgloss.NewStyle().Bold(true).Render(strings.TrimSpace(s.Text())))
	case "em", "i":
		sb.WriteString(lipgloss.NewStyle().Italic(true).Render(strings.TrimSpace(s.Text())))
	case "a":
		sb.WriteString(lipgloss.NewStyle().Foreground(t.Link).Underline(true).Render(strings.TrimSpace(s.Text())))
	case "code":
		sb.WriteString(lipgloss.NewStyle().Foreground(t.Code).Render(s.Text()))
	case "br":
		sb.WriteString("\n")
	default:
		s.Contents().Each(func(i int, child *goquery.Selection) {
			r.renderInline(child, sb)
		})
	}
}

func (r *fallbackRenderer) renderList(s *goquery.Selection, ordered bool) string {
	prefixStyle := lipgloss.NewStyle().Foreground(theme.Current.Accent)

	var lines []string
	s.ChildrenFiltered("li").Each(func(i int, li *goquery.Selection) {
		prefix := "• "
		if ordered {
			prefix = fmt.Sprintf("%d. ", i+1)
		}
		var sb strings.Builder
		r.renderInline(li, &sb)
		// Continuation lines hang under the item text.
		pad := strings.Repeat(" ", ansi.StringWidth(prefix))
		text := wordwrap.String(strings.TrimSpace(sb.String()), max(r.width-len(pad), 1))
		lines = append(lines, prefixStyle.Render(prefix)+strings.ReplaceAll(text, "\n", "\n"+pad))
	})
	return strings.Join(lines, "\n")
}
