package pipeline

import (
	"strings"

	"golang.org/x/net/html"
)

// labelIndex maps an id to the trimmed text of a <label for=id> found
// anywhere in the document, pre-scanned once before the main walk (§4.1.3
// step 2).
type labelIndex map[string]string

func buildLabelIndex(root *html.Node) labelIndex {
	idx := labelIndex{}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && tagName(n) == "label" {
			if forID, ok := attr(n, "for"); ok && forID != "" {
				if _, exists := idx[forID]; !exists {
					idx[forID] = collectText(n)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return idx
}

// collectText concatenates descendant text runs with single spaces,
// trimmed, per §4.1.3 step 7.
func collectText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			t := strings.TrimSpace(n.Data)
			if t != "" {
				if sb.Len() > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(t)
			}
			return
		}
		if n.Type == html.ElementNode && shouldPrune(n) {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return truncateName(strings.TrimSpace(sb.String()))
}

// truncateName applies the 200-byte cut with "..." suffix at a character
// boundary ≤197 bytes, per §4.1.3 step 7.
func truncateName(s string) string {
	if len(s) <= 200 {
		return s
	}
	cut := 197
	for cut > 0 && !utf8RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

func utf8RuneStart(b byte) bool {
	return b&0xC0 != 0x80
}

// accessibleName implements §4.1.3's 7-step precedence.
func accessibleName(n *html.Node, labels labelIndex) string {
	if v, ok := attr(n, "aria-label"); ok {
		if t := strings.TrimSpace(v); t != "" {
			return truncateName(t)
		}
	}
	if id, ok := attr(n, "id"); ok && id != "" {
		if text, ok := labels[id]; ok {
			return text
		}
	}
	tag := tagName(n)
	if tag == "img" {
		v, _ := attr(n, "alt")
		return truncateName(strings.TrimSpace(v))
	}
	if tag == "input" || tag == "textarea" {
		if v, ok := attr(n, "placeholder"); ok {
			if t := strings.TrimSpace(v); t != "" {
				return truncateName(t)
			}
		}
	}
	if v, ok := attr(n, "title"); ok {
		if t := strings.TrimSpace(v); t != "" {
			return truncateName(t)
		}
	}
	if tag == "select" {
		return ""
	}
	return collectText(n)
}
