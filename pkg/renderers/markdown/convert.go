package markdown

import (
	"strings"

	"golang.org/x/net/html"
)

// fromHTML converts the sanitized inline markup used in labels and notes into
// Markdown: code spans, emphasis and links are kept, other tags are dropped.
func fromHTML(fragment string) string {
	tokenizer := html.NewTokenizer(strings.NewReader(fragment))

	var (
		b     strings.Builder
		hrefs []string
		code  int
	)
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case html.TextToken:
			text := string(tokenizer.Text())
			if code == 0 {
				text = inlineEscaper.Replace(preserveEdges(text))
			}
			b.WriteString(text)
		case html.StartTagToken:
			name, hasAttr := tokenizer.TagName()
			switch string(name) {
			case "code", "kbd":
				code++
				b.WriteString("`")
			case "em", "var":
				b.WriteString("_")
			case "strong":
				b.WriteString("**")
			case "br":
				b.WriteString(" ")
			case "a":
				hrefs = append(hrefs, linkTarget(tokenizer, hasAttr))
				b.WriteString("[")
			}
		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			switch string(name) {
			case "code", "kbd":
				if code > 0 {
					code--
				}
				b.WriteString("`")
			case "em", "var":
				b.WriteString("_")
			case "strong":
				b.WriteString("**")
			case "a":
				href := ""
				if n := len(hrefs); n > 0 {
					href, hrefs = hrefs[n-1], hrefs[:n-1]
				}
				b.WriteString("](" + href + ")")
			}
		case html.SelfClosingTagToken:
			if name, _ := tokenizer.TagName(); string(name) == "br" {
				b.WriteString(" ")
			}
		}
	}
}

func linkTarget(tokenizer *html.Tokenizer, hasAttr bool) string {
	for hasAttr {
		var key, val []byte
		key, val, hasAttr = tokenizer.TagAttr()
		if string(key) == "href" {
			return string(val)
		}
	}
	return ""
}

// preserveEdges keeps a single space where text touched whitespace so that
// collapsing does not glue words to neighbouring inline tags.
func preserveEdges(text string) string {
	trimmed := strings.Join(strings.Fields(text), " ")
	if trimmed == "" {
		if text != "" {
			return " "
		}
		return ""
	}
	if strings.TrimLeft(text, " \t\r\n") != text {
		trimmed = " " + trimmed
	}
	if strings.TrimRight(text, " \t\r\n") != text {
		trimmed += " "
	}
	return trimmed
}
