// Package role defines the closed set of semantic roles a pipeline node can
// carry, mirroring the accessibility role model the teacher's AXNode walk
// approximated ad hoc (cpunion-agent-browser-go/snapshot.go InteractiveRoles
// / ContentRoles / StructuralRoles) but as an exhaustive tagged enum instead
// of a handful of string-keyed maps.
package role

// Role is a closed tagged variant. Kind discriminates the variant; Level is
// only meaningful when Kind == Heading.
type Kind uint8

const (
	Banner Kind = iota
	Navigation
	Main
	Complementary
	ContentInfo
	Search
	Region
	Form
	Heading
	List
	ListItem
	Table
	Row
	Cell
	ColumnHeader
	Paragraph
	Button
	Link
	TextBox
	Checkbox
	Radio
	ComboBox
	Option
	Tab
	TabPanel
	Dialog
	Alert
	Menu
	MenuItem
	Img
	Separator
	StaticText
	Group
)

// Role pairs a Kind with the heading level (1..6), set only for Kind ==
// Heading.
type Role struct {
	Kind  Kind
	Level int
}

// Landmark roles per the GLOSSARY.
func (r Role) IsLandmark() bool {
	switch r.Kind {
	case Navigation, Main, Banner, ContentInfo, Complementary, Search, Region:
		return true
	}
	return false
}

// Interactive roles per spec.md §3: the subset on which click/type/select
// is meaningful and which always receives a non-zero ref.
func (r Role) Interactive() bool {
	switch r.Kind {
	case Button, Link, TextBox, Checkbox, Radio, ComboBox, Option, Tab, MenuItem, Dialog, Form:
		return true
	}
	return false
}

// Mergeable roles are eligible for sibling-run summarization (§4.1.5).
func (r Role) Mergeable() bool {
	switch r.Kind {
	case ListItem, Row, Cell, Option:
		return true
	}
	return false
}

// Container roles whose name is suppressed when they carry children, unless
// those children are themselves redundant (§4.2).
func (r Role) IsContainer() bool {
	switch r.Kind {
	case List, Navigation, Main, Banner, ContentInfo, Complementary, Region, Form, Table, Row, Paragraph, Group:
		return true
	}
	return false
}

// Display renders the role the way the compact-text serializer needs it
// (§4.2): lower-case, with the heading level embedded.
func (r Role) Display() string {
	switch r.Kind {
	case Banner:
		return "banner"
	case Navigation:
		return "navigation"
	case Main:
		return "main"
	case Complementary:
		return "complementary"
	case ContentInfo:
		return "contentinfo"
	case Search:
		return "search"
	case Region:
		return "region"
	case Form:
		return "form"
	case Heading:
		level := r.Level
		if level == 0 {
			level = 2
		}
		return headingDisplay(level)
	case List:
		return "list"
	case ListItem:
		return "listitem"
	case Table:
		return "table"
	case Row:
		return "row"
	case Cell:
		return "cell"
	case ColumnHeader:
		return "columnheader"
	case Paragraph:
		return "paragraph"
	case Button:
		return "button"
	case Link:
		return "link"
	case TextBox:
		return "textbox"
	case Checkbox:
		return "checkbox"
	case Radio:
		return "radio"
	case ComboBox:
		return "combobox"
	case Option:
		return "option"
	case Tab:
		return "tab"
	case TabPanel:
		return "tabpanel"
	case Dialog:
		return "dialog"
	case Alert:
		return "alert"
	case Menu:
		return "menu"
	case MenuItem:
		return "menuitem"
	case Img:
		return "img"
	case Separator:
		return "separator"
	case StaticText:
		return "text"
	case Group:
		return "group"
	default:
		return "group"
	}
}

func headingDisplay(level int) string {
	const digits = "0123456789"
	if level < 0 || level > 9 {
		level = 2
	}
	return "heading[" + string(digits[level]) + "]"
}

// FromDisplay parses a role token back from its Display() form (e.g.
// "button", "heading[2]"), for callers accepting role names as input (e.g.
// the task-context tool's focus_roles). It reports ok=false for anything
// it does not recognize.
func FromDisplay(s string) (Kind, bool) {
	switch s {
	case "banner":
		return Banner, true
	case "navigation":
		return Navigation, true
	case "main":
		return Main, true
	case "complementary":
		return Complementary, true
	case "contentinfo":
		return ContentInfo, true
	case "search":
		return Search, true
	case "region":
		return Region, true
	case "form":
		return Form, true
	case "list":
		return List, true
	case "listitem":
		return ListItem, true
	case "table":
		return Table, true
	case "row":
		return Row, true
	case "cell":
		return Cell, true
	case "columnheader":
		return ColumnHeader, true
	case "paragraph":
		return Paragraph, true
	case "button":
		return Button, true
	case "link":
		return Link, true
	case "textbox":
		return TextBox, true
	case "checkbox":
		return Checkbox, true
	case "radio":
		return Radio, true
	case "combobox":
		return ComboBox, true
	case "option":
		return Option, true
	case "tab":
		return Tab, true
	case "tabpanel":
		return TabPanel, true
	case "dialog":
		return Dialog, true
	case "alert":
		return Alert, true
	case "menu":
		return Menu, true
	case "menuitem":
		return MenuItem, true
	case "img":
		return Img, true
	case "separator":
		return Separator, true
	case "text":
		return StaticText, true
	case "group":
		return Group, true
	}
	if len(s) == 10 && s[:8] == "heading[" && s[9] == ']' {
		d := s[8]
		if d >= '0' && d <= '9' {
			return Heading, true
		}
	}
	return 0, false
}

// NewHeading builds a Heading role with the given level. A level outside
// 1..6 falls back to 2, the same default used when aria-level is absent
// (§4.1.2).
func NewHeading(level int) Role {
	if level < 1 || level > 6 {
		level = 2
	}
	return Role{Kind: Heading, Level: level}
}

// Of is a convenience constructor for non-Heading roles.
func Of(k Kind) Role {
	return Role{Kind: k}
}
