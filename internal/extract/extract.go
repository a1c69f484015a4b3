package extract

import (
	"strings"

	"github.com/cortexbrowser/cortex-browser/internal/pipeline"
	"github.com/cortexbrowser/cortex-browser/internal/role"
)

// Extract implements extract(snapshot, schema, selector?) -> value (§4.6).
func Extract(nodes []*pipeline.SemanticNode, schema Schema, selector string) any {
	subtrees := selectSubtrees(nodes, selector)
	return extractValue(subtrees, schema)
}

func extractValue(subtrees []*pipeline.SemanticNode, schema Schema) any {
	switch schema.Type {
	case "array":
		return extractArray(subtrees, schema)
	case "object":
		return extractObject(subtrees, schema)
	default:
		return coercePrimitive(schema.Type, firstText(subtrees))
	}
}

func firstText(subtrees []*pipeline.SemanticNode) string {
	if len(subtrees) == 0 {
		return ""
	}
	return subtrees[0].Name
}

// extractArray implements the array mode of §4.6: table rows first, falling
// back to list items, else an empty array.
func extractArray(subtrees []*pipeline.SemanticNode, schema Schema) []any {
	if schema.Items == nil {
		return []any{}
	}
	if table := findTable(subtrees); table != nil {
		if rows := extractTableRows(table, *schema.Items); len(rows) > 0 {
			return rows
		}
	}
	if list := findQualifyingList(subtrees); list != nil {
		return extractListItems(list, *schema.Items)
	}
	return []any{}
}

func findTable(subtrees []*pipeline.SemanticNode) *pipeline.SemanticNode {
	var found *pipeline.SemanticNode
	var walk func(n *pipeline.SemanticNode)
	walk = func(n *pipeline.SemanticNode) {
		if found != nil {
			return
		}
		if n.Role.Kind == role.Table {
			found = n
			return
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	for _, n := range subtrees {
		walk(n)
	}
	return found
}

// extractTableRows builds one object per Row with >=1 Cell, mapping each
// requested property to its best-matching header column (§4.6).
func extractTableRows(table *pipeline.SemanticNode, itemSchema Schema) []any {
	headers := collectColumnHeaders(table)
	if len(headers) == 0 {
		return nil
	}
	propColumn := map[string]int{}
	for prop := range itemSchema.Properties {
		col, ok := bestHeaderMatch(prop, headers)
		if ok {
			propColumn[prop] = col
		}
	}
	if len(propColumn) == 0 {
		return nil
	}

	var rows []*pipeline.SemanticNode
	collectRows(table, &rows)

	var out []any
	for _, row := range rows {
		cells := collectCells(row)
		if len(cells) == 0 {
			continue
		}
		obj := map[string]any{}
		for prop, col := range propColumn {
			if col < 0 || col >= len(cells) {
				continue
			}
			propSchema := itemSchema.Properties[prop]
			obj[prop] = coercePrimitive(propSchema.Type, cells[col].Name)
		}
		out = append(out, obj)
	}
	return out
}

func collectColumnHeaders(table *pipeline.SemanticNode) []string {
	var headers []string
	var walk func(n *pipeline.SemanticNode)
	walk = func(n *pipeline.SemanticNode) {
		if n.Role.Kind == role.ColumnHeader {
			headers = append(headers, n.Name)
			return
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(table)
	return headers
}

func collectRows(n *pipeline.SemanticNode, out *[]*pipeline.SemanticNode) {
	if n.Role.Kind == role.Row && hasCellChild(n) {
		*out = append(*out, n)
	}
	for _, c := range n.Children {
		collectRows(c, out)
	}
}

func hasCellChild(row *pipeline.SemanticNode) bool {
	for _, c := range row.Children {
		if c.Role.Kind == role.Cell {
			return true
		}
	}
	return false
}

func collectCells(row *pipeline.SemanticNode) []*pipeline.SemanticNode {
	var cells []*pipeline.SemanticNode
	for _, c := range row.Children {
		if c.Role.Kind == role.Cell {
			cells = append(cells, c)
		}
	}
	return cells
}

// bestHeaderMatch implements the header-scoring rule of §4.6.
func bestHeaderMatch(prop string, headers []string) (int, bool) {
	best := -1
	bestScore := 0
	lowerProp := strings.ToLower(prop)
	for i, h := range headers {
		lowerH := strings.ToLower(h)
		score := 0
		switch {
		case lowerH == lowerProp:
			score = 10
		case strings.Contains(lowerH, lowerProp) || strings.Contains(lowerProp, lowerH):
			score = 5
		default:
			score = 3 * wordOverlap(lowerProp, lowerH)
		}
		if score > bestScore {
			bestScore = score
			best = i
		}
	}
	if bestScore <= 0 {
		return 0, false
	}
	return best, true
}

func wordOverlap(a, b string) int {
	aw := splitWords(a)
	bw := splitWords(b)
	set := map[string]bool{}
	for _, w := range bw {
		set[w] = true
	}
	n := 0
	for _, w := range aw {
		if set[w] {
			n++
		}
	}
	return n
}

func splitWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == ' ' || r == '-'
	})
}

// findQualifyingList finds the first List with >=2 ListItem children, or
// any container with >=2 ListItem children (§4.6).
func findQualifyingList(subtrees []*pipeline.SemanticNode) *pipeline.SemanticNode {
	var found *pipeline.SemanticNode
	var walk func(n *pipeline.SemanticNode)
	walk = func(n *pipeline.SemanticNode) {
		if found != nil {
			return
		}
		if countListItemChildren(n) >= 2 {
			found = n
			return
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	for _, n := range subtrees {
		walk(n)
	}
	return found
}

func countListItemChildren(n *pipeline.SemanticNode) int {
	count := 0
	for _, c := range n.Children {
		if c.Role.Kind == role.ListItem {
			count++
		}
	}
	return count
}

func extractListItems(list *pipeline.SemanticNode, itemSchema Schema) []any {
	var out []any
	for _, c := range list.Children {
		if c.Role.Kind != role.ListItem {
			continue
		}
		out = append(out, extractObject([]*pipeline.SemanticNode{c}, itemSchema))
	}
	if out == nil {
		out = []any{}
	}
	return out
}

// extractObject implements the object mode of §4.6: each property is
// independently scored against every descendant of the selected subtrees,
// and the highest-scoring node's text wins.
func extractObject(subtrees []*pipeline.SemanticNode, schema Schema) map[string]any {
	out := map[string]any{}
	for prop, propSchema := range schema.Properties {
		best := bestFieldMatch(prop, subtrees)
		if best == "" {
			continue
		}
		out[prop] = coercePrimitive(propSchema.Type, best)
	}
	return out
}

// bestFieldMatch scores every descendant against prop and returns the
// winning node's text (§4.6).
func bestFieldMatch(prop string, subtrees []*pipeline.SemanticNode) string {
	best := ""
	bestScore := 0.0
	var walk func(n *pipeline.SemanticNode)
	walk = func(n *pipeline.SemanticNode) {
		score := fieldScore(prop, n)
		if isLabelLike(n) && score > 0 {
			if child := firstTextualChild(n); child != "" {
				childScore := score + 2
				if childScore > bestScore {
					bestScore = childScore
					best = child
				}
			}
		}
		if score > bestScore && textOf(n) != "" {
			bestScore = score
			best = textOf(n)
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	for _, n := range subtrees {
		walk(n)
	}
	return best
}

// firstTextualChild returns the first child of n with non-empty text, for
// the label-node "adjacent textual children" bonus of §4.6.
func firstTextualChild(n *pipeline.SemanticNode) string {
	for _, c := range n.Children {
		if t := textOf(c); t != "" {
			return t
		}
	}
	return ""
}

func textOf(n *pipeline.SemanticNode) string {
	if n.Value != nil {
		return *n.Value
	}
	return n.Name
}

func isLabelLike(n *pipeline.SemanticNode) bool {
	switch n.Role.Kind {
	case role.Heading, role.ColumnHeader, role.StaticText:
		return true
	}
	return false
}

var statusWords = []string{"available", "unavailable", "active", "inactive", "pending", "sold out", "in stock", "out of stock"}

// fieldScore implements the object-mode scoring of §4.6.
func fieldScore(prop string, n *pipeline.SemanticNode) float64 {
	lowerProp := strings.ToLower(prop)
	lowerName := strings.ToLower(n.Name)
	var score float64
	switch {
	case lowerName == lowerProp:
		score += 10
	case strings.Contains(lowerName, lowerProp) || strings.Contains(lowerProp, lowerName):
		score += 5
	}
	score += roleHintBonus(lowerProp, n)
	return score
}

// roleHintBonus implements the +3 role-hint bonus of §4.6.
func roleHintBonus(lowerProp string, n *pipeline.SemanticNode) float64 {
	text := textOf(n)
	switch {
	case containsAny(lowerProp, "price", "cost", "total"):
		if strings.ContainsAny(text, "$€£¥") {
			return 3
		}
	case containsAny(lowerProp, "link", "url", "href"):
		if n.Role.Kind == role.Link {
			return 3
		}
		if _, ok := n.Attr("href"); ok {
			return 3
		}
	case containsAny(lowerProp, "rating", "score", "stars"):
		if len(text) <= 10 && containsDigit(text) {
			return 3
		}
	case containsAny(lowerProp, "status", "state"):
		lowerText := strings.ToLower(text)
		for _, w := range statusWords {
			if strings.Contains(lowerText, w) {
				return 3
			}
		}
	}
	return 0
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func containsDigit(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}
