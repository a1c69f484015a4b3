package pipeline

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/cortexbrowser/cortex-browser/internal/locator"
)

// Process implements the pipeline operation of §4.1:
// process(html, url) -> (PageSnapshot, RefIndex). It never fails; malformed
// markup yields an empty tree rather than an error, matching the teacher's
// tolerant parsing posture (cpunion-agent-browser-go relies on the same
// forgiving-parser contract for ARIA snapshots).
func Process(pageHTML, url string) Result {
	doc, err := html.Parse(strings.NewReader(pageHTML))
	if err != nil || doc == nil {
		return Result{Snapshot: PageSnapshot{URL: url}, Refs: locator.RefIndex{}}
	}

	body := findBody(doc)
	if body == nil {
		return Result{Snapshot: PageSnapshot{URL: url}, Refs: locator.RefIndex{}}
	}

	w := &walker{
		labels: buildLabelIndex(doc),
		refs:   newRefAssigner(),
	}
	nodes := w.walkChildren(body, nil)

	return Result{
		Snapshot: PageSnapshot{
			Title: findTitle(doc),
			URL:   url,
			Nodes: nodes,
		},
		Refs: w.refs.index,
	}
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == atom.Body {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findBody(c); found != nil {
			return found
		}
	}
	return nil
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.DataAtom == atom.Title {
		return collectText(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
}
