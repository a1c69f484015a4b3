package pipeline

import "strings"

var textInputTypes = map[string]bool{
	"password": true, "email": true, "url": true, "tel": true,
	"search": true, "number": true,
}

// buildAttrs implements §4.1.7: only type/href/checked/disabled/required
// reach a kept node, in that order.
func buildAttrs(n *nodeCtx) []Attr {
	var out []Attr
	tag := tagName(n.html)
	if tag == "input" {
		if t, ok := attr(n.html, "type"); ok {
			low := strings.ToLower(strings.TrimSpace(t))
			if textInputTypes[low] {
				out = append(out, Attr{Key: "type", Value: low})
			}
		}
	}
	if tag == "a" {
		if href, ok := attr(n.html, "href"); ok {
			href = strings.TrimSpace(href)
			if href != "" && !strings.HasPrefix(strings.ToLower(href), "javascript:") {
				out = append(out, Attr{Key: "href", Value: href})
			}
		}
	}
	if hasAttr(n.html, "checked") {
		out = append(out, Attr{Key: "checked", Value: ""})
	}
	if hasAttr(n.html, "disabled") {
		out = append(out, Attr{Key: "disabled", Value: ""})
	}
	if hasAttr(n.html, "required") {
		out = append(out, Attr{Key: "required", Value: ""})
	}
	return out
}

// buildValue populates the value slot from the HTML value attribute for
// text-type inputs and textareas (§4.1.7).
func buildValue(n *nodeCtx) *string {
	tag := tagName(n.html)
	if tag != "input" && tag != "textarea" {
		return nil
	}
	if tag == "input" {
		t, _ := attr(n.html, "type")
		low := strings.ToLower(strings.TrimSpace(t))
		switch low {
		case "checkbox", "radio", "submit", "reset", "button", "image", "hidden", "file":
			return nil
		}
	}
	v, ok := attr(n.html, "value")
	if !ok {
		if tag == "textarea" {
			text := collectText(n.html)
			return &text
		}
		return nil
	}
	return &v
}
