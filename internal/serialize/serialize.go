// Package serialize renders a pipeline.PageSnapshot as the compact indented
// text format the model reads (spec.md §4.2). It replaces the teacher's
// ARIA-snapshot passthrough text (cpunion-agent-browser-go/aria_processor.go
// processAriaLine) with a renderer over the typed SemanticNode tree instead
// of regex-munged ARIA-snapshot lines.
package serialize

import (
	"fmt"
	"strings"

	"github.com/cortexbrowser/cortex-browser/internal/pipeline"
	"github.com/cortexbrowser/cortex-browser/internal/role"
)

// ToCompactText implements to_compact_text(snapshot) -> string (§4.2).
func ToCompactText(snap pipeline.PageSnapshot) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "page: %q [%s]\n", snap.Title, snap.URL)
	if snap.Viewport != nil {
		v := snap.Viewport
		fmt.Fprintf(&sb, "viewport: %d-%d of %dpx\n", v.ScrollY, v.ScrollY+v.ViewportHeight, v.DocumentHeight)
	}
	sb.WriteString("---\n")

	for _, n := range snap.Nodes {
		writeNode(&sb, n, 0)
	}
	return sb.String()
}

func writeNode(sb *strings.Builder, n *pipeline.SemanticNode, depth int) {
	indent := strings.Repeat("  ", depth)

	if n.Role.Kind == role.StaticText {
		sb.WriteString(indent)
		sb.WriteString(n.Name)
		sb.WriteString("\n")
		return
	}

	sb.WriteString(indent)
	sb.WriteString(n.Role.Display())

	if n.RefID != 0 {
		fmt.Fprintf(sb, " @e%d", n.RefID)
	}
	if n.Offscreen != nil && *n.Offscreen {
		sb.WriteString(" [offscreen]")
	}

	suppressed, _ := suppressChildren(n)

	// Name suppression per §4.2: a container with non-empty children
	// suppresses its name unless those children are redundant (collapsed
	// away below, in which case the name is kept as normal).
	showName := n.Name != ""
	if n.Role.IsContainer() && len(n.Children) > 0 && !suppressed {
		showName = false
	}
	if showName {
		fmt.Fprintf(sb, " %q", n.Name)
	}

	writeAttrSuffixes(sb, n)

	if n.Value != nil {
		fmt.Fprintf(sb, " = %q", *n.Value)
	}

	if suppressed {
		sb.WriteString("\n")
		return
	}
	if len(n.Children) == 0 {
		sb.WriteString("\n")
		return
	}
	sb.WriteString(":\n")
	for _, c := range n.Children {
		writeNode(sb, c, depth+1)
	}
}

// suppressChildren detects the redundant-children case of §4.2: exactly one
// child, that child is StaticText, and its name equals the parent's name.
// When redundant, children are not emitted (the bool return is true) and the
// single static-text child is returned so the caller can still treat the
// parent's name as kept.
func suppressChildren(n *pipeline.SemanticNode) (bool, *pipeline.SemanticNode) {
	if len(n.Children) != 1 {
		return false, nil
	}
	only := n.Children[0]
	if only.Role.Kind != role.StaticText {
		return false, nil
	}
	if only.Name != n.Name {
		return false, nil
	}
	return true, only
}

// writeAttrSuffixes emits the attribute suffixes in the exact order of
// §4.2.
func writeAttrSuffixes(sb *strings.Builder, n *pipeline.SemanticNode) {
	if n.Role.Kind == role.Checkbox || n.Role.Kind == role.Radio {
		if _, checked := n.Attr("checked"); checked {
			sb.WriteString(" [checked]")
		} else {
			sb.WriteString(" [unchecked]")
		}
	}
	if t, ok := n.Attr("type"); ok && t != "text" {
		fmt.Fprintf(sb, " (%s)", t)
	}
	if _, ok := n.Attr("disabled"); ok {
		sb.WriteString(" [disabled]")
	}
	if _, ok := n.Attr("required"); ok {
		sb.WriteString(" [required]")
	}
	if h, ok := n.Attr("href"); ok {
		fmt.Fprintf(sb, " -> %s", h)
	}
}
