package pipeline

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/cortexbrowser/cortex-browser/internal/locator"
	"github.com/cortexbrowser/cortex-browser/internal/refhash"
)

// refAssigner hands out ref IDs for one snapshot, implementing the
// determinism/collision rules of §4.1.6. It is local to a single Process
// call: unlike the teacher's global atomic.Int64 counter
// (cpunion-agent-browser-go/snapshot.go), nothing here outlives one
// html->snapshot conversion.
type refAssigner struct {
	used     map[uint32]bool
	overflow int
	index    locator.RefIndex
}

func newRefAssigner() *refAssigner {
	return &refAssigner{used: map[uint32]bool{}, index: locator.RefIndex{}}
}

// assign computes the ref for n at structural path and records its locator.
func (a *refAssigner) assign(n *html.Node, name string, path []int) uint32 {
	h := refHash(n, name, path)
	candidate := refhash.RefCandidate(h)
	ref := a.resolve(candidate)
	a.used[ref] = true
	a.index[ref] = buildLocator(n, name)
	return ref
}

// resolve performs the linear-probe collision resolution of §4.1.6.
func (a *refAssigner) resolve(candidate uint32) uint32 {
	if !a.used[candidate] {
		return candidate
	}
	cur := candidate
	for i := 0; i < 90000; i++ {
		cur++
		if cur > 99999 {
			cur = 10000
		}
		if !a.used[cur] {
			return cur
		}
	}
	a.overflow++
	return 100000 + uint32(a.overflow)
}

// hasStrongIdentity reports whether n carries id/name/href (§4.1.6).
func hasStrongIdentity(n *html.Node) bool {
	return hasAttr(n, "id") || hasAttr(n, "name") || hasAttr(n, "href")
}

// refHash implements the two hashing branches of §4.1.6.
func refHash(n *html.Node, name string, path []int) uint64 {
	tag := tagName(n)
	if hasStrongIdentity(n) {
		parts := []string{tag}
		if v, ok := attr(n, "id"); ok {
			parts = append(parts, "id:"+v)
		}
		if v, ok := attr(n, "name"); ok {
			parts = append(parts, "name:"+v)
		}
		if v, ok := attr(n, "href"); ok {
			parts = append(parts, "href:"+v)
		}
		if v, ok := attr(n, "type"); ok {
			parts = append(parts, "type:"+v)
		}
		return refhash.SumStrings(parts...)
	}
	parts := []string{tag}
	if v, ok := attr(n, "type"); ok {
		parts = append(parts, "type:"+v)
	}
	if v, ok := attr(n, "href"); ok {
		parts = append(parts, "href:"+v)
	}
	parts = append(parts, "name:"+name)
	parts = append(parts, "path:"+pathKey(path))
	return refhash.SumStrings(parts...)
}

func pathKey(path []int) string {
	var sb strings.Builder
	for i, p := range path {
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(strconv.Itoa(p))
	}
	return sb.String()
}

// buildLocator derives the ElementLocator for n, mirroring the same
// resolution precedence the locator package uses to relocate elements
// (spec.md §3): id > name[,type] > href > text.
func buildLocator(n *html.Node, name string) locator.ElementLocator {
	l := locator.ElementLocator{Tag: tagName(n)}
	if v, ok := attr(n, "id"); ok && v != "" {
		l.ID = v
		return l
	}
	if v, ok := attr(n, "name"); ok && v != "" {
		l.Name = v
		if t, ok := attr(n, "type"); ok {
			l.InputType = t
		}
		return l
	}
	if v, ok := attr(n, "href"); ok && v != "" {
		l.Href = v
		return l
	}
	l.Text = name
	return l
}
