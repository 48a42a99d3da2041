package markup

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
)

// inlineTags are elements that flow inside a paragraph.
var inlineTags = map[string]bool{
	"#text": true, "a": true, "b": true, "strong": true, "i": true, "em": true,
	"code": true, "span": true, "br": true, "u": true, "small": true, "mark": true,
}

// mdConverter converts goquery HTML nodes to markdown.
type mdConverter struct{}

// convertBlocks converts the children of s. Runs of loose text and inline
// elements are gathered into paragraphs.
func (c *mdConverter) convertBlocks(s *goquery.Selection) string {
	var sb, para strings.Builder
	flush := func() {
		if text := strings.TrimSpace(para.String()); text != "" {
			sb.WriteString(text + "\n\n")
		}
		para.Reset()
	}

	s.Contents().Each(func(i int, child *goquery.Selection) {
		if inlineTags[goquery.NodeName(child)] {
			c.convertInline(child, &para)
			return
		}
		flush()
		sb.WriteString(c.convertNode(child))
	})
	flush()
	return sb.String()
}

func (c *mdConverter) convertNode(s *goquery.Selection) string {
	switch tag := goquery.NodeName(s); tag {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return c.convertHeading(s, int(tag[1]-'0'))
	case "p":
		var sb strings.Builder
		c.convertInlineChildren(s, &sb)
		if text := strings.TrimSpace(sb.String()); text != "" {
			return text + "\n\n"
		}
		return ""
	case "ul":
		return c.convertList(s, false, 0)
	case "ol":
		return c.convertList(s, true, 0)
	case "blockquote":
		return c.convertBlockquote(s)
	case "pre":
		return c.convertCodeBlock(s)
	case "hr":
		return "---\n\n"
	case "div", "article", "section", "main", "header", "footer", "figure":
		return c.convertBlocks(s)
	case "#comment", "script", "style":
		return ""
	default:
		if text := strings.TrimSpace(s.Text()); text != "" {
			return text + "\n\n"
		}
		return ""
	}
}

func (c *mdConverter) convertHeading(s *goquery.Selection, level int) string {
	text := strings.TrimSpace(s.Text())
	if text == "" {
		return ""
	}
	return strings.Repeat("#", level) + " " + text + "\n\n"
}

func (c *mdConverter) convertInline(s *goquery.Selection, sb *strings.Builder) {
	switch goquery.NodeName(s) {
	case "#text":
		sb.WriteString(collapseSpace(s.Text()))
	case "a":
		text := strings.TrimSpace(s.Text())
		href, ok := s.Attr("href")
		if !ok || href == "" {
			sb.WriteString(text)
			return
		}
		if text == "" {
			text = href
		}
		fmt.Fprintf(sb, "[%s](%s)", text, href)
	case "strong", "b":
		sb.WriteString("**")
		c.convertInlineChildren(s, sb)
		sb.WriteString("**")
	case "em", "i":
		sb.WriteString("*")
		c.convertInlineChildren(s, sb)
		sb.WriteString("*")
	case "code":
		sb.WriteString("`" + s.Text() + "`")
	case "br":
		sb.WriteString("  \n")
	default:
		c.convertInlineChildren(s, sb)
	}
}

func (c *mdConverter) convertInlineChildren(s *goquery.Selection, sb *strings.Builder) {
	s.Contents().Each(func(i int, child *goquery.Selection) {
		c.convertInline(child, sb)
	})
}

func (c *mdConverter) convertList(s *goquery.Selection, ordered bool, depth int) string {
	var sb strings.Builder
	indent := strings.Repeat("  ", depth)

	s.ChildrenFiltered("li").Each(func(i int, li *goquery.Selection) {
		prefix := indent + "- "
		if ordered {
			prefix = fmt.Sprintf("%s%d. ", indent, i+1)
		}

		var item strings.Builder
		li.Contents().Each(func(j int, child *goquery.Selection) {
			if tag := goquery.NodeName(child); tag != "ul" && tag != "ol" {
				c.convertInline(child, &item)
			}
		})
		sb.WriteString(prefix + strings.TrimSpace(item.String()) + "\n")

		li.Children().Each(func(j int, child *goquery.Selection) {
			switch goquery.NodeName(child) {
			case "ul":
				sb.WriteString(strings.TrimSuffix(c.convertList(child, false, depth+1), "\n"))
			case "ol":
				sb.WriteString(strings.TrimSuffix(c.convertList(child, true, depth+1), "\n"))
			}
		})
	})

	return sb.String() + "\n"
}

func (c *mdConverter) convertBlockquote(s *goquery.Selection) string {
	var sb strings.Builder
	for _, line := range strings.Split(strings.TrimRight(c.convertBlocks(s), "\n"), "\n") {
		sb.WriteString("> " + line + "\n")
	}
	return sb.String() + "\n"
}

func (c *mdConverter) convertCodeBlock(s *goquery.Selection) string {
	code := s.Find("code")
	lang := ""
	text := s.Text()
	if code.Length() > 0 {
		text = code.Text()
		if class, _ := code.Attr("class"); strings.Contains(class, "language-") {
			if fields := strings.Fields(strings.SplitN(class, "language-", 2)[1]); len(fields) > 0 {
				lang = fields[0]
			}
		}
	}
	return "```" + lang + "\n" + strings.TrimRight(text, "\n") + "\n```\n\n"
}

// collapseSpace folds every whitespace run in s into a single space.
func collapseSpace(s string) string {
	out := strings.Join(strings.Fields(s), " ")
	if out == "" {
		if s != "" {
			return " "
		}
		return ""
	}
	if unicode.IsSpace(rune(s[0])) {
		out = " " + out
	}
	if unicode.IsSpace(rune(s[len(s)-1])) {
		out += " "
	}
	return out
}
