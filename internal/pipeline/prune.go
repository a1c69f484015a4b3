package pipeline

import (
	"strings"

	"golang.org/x/net/html"
)

// prunedTags is the tag set dropped together with its subtree (spec.md
// §4.1.1).
var prunedTags = map[string]bool{
	"script": true, "style": true, "noscript": true, "meta": true,
	"link": true, "head": true, "svg": true, "path": true, "defs": true,
	"clippath": true, "lineargradient": true, "template": true,
	"iframe": true, "object": true, "embed": true, "br": true, "wbr": true,
}

// shouldPrune reports whether n (together with its subtree) must be dropped
// per spec.md §4.1.1.
func shouldPrune(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	tag := strings.ToLower(n.Data)
	if prunedTags[tag] {
		return true
	}
	if attrEquals(n, "aria-hidden", "true") {
		return true
	}
	if hasAttr(n, "hidden") {
		return true
	}
	if style, ok := attr(n, "style"); ok {
		low := strings.ToLower(style)
		if strings.Contains(low, "display:none") || strings.Contains(low, "display: none") ||
			strings.Contains(low, "visibility:hidden") || strings.Contains(low, "visibility: hidden") {
			return true
		}
	}
	if tag == "input" && attrEquals(n, "type", "hidden") {
		return true
	}
	if tag == "label" && hasAttr(n, "for") {
		return true
	}
	return false
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val, true
		}
	}
	return "", false
}

func hasAttr(n *html.Node, key string) bool {
	_, ok := attr(n, key)
	return ok
}

func attrEquals(n *html.Node, key, val string) bool {
	v, ok := attr(n, key)
	return ok && v == val
}

func tagName(n *html.Node) string {
	if n.DataAtom != 0 {
		return n.DataAtom.String()
	}
	return strings.ToLower(n.Data)
}
