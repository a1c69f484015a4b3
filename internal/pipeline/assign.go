package pipeline

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/cortexbrowser/cortex-browser/internal/role"
)

// ariaRoleTokens maps a recognized aria-role/role attribute token to a Kind,
// for the tokens that map 1:1 onto a Kind without special-casing (§4.1.2).
// heading, alertdialog, menuitemcheckbox/menuitemradio, grid, gridcell and
// image are handled separately in assignRole because they need extra input
// (aria-level) or fold onto a Kind already named differently.
var ariaRoleTokens = map[string]role.Kind{
	"banner":        role.Banner,
	"navigation":    role.Navigation,
	"main":          role.Main,
	"complementary": role.Complementary,
	"contentinfo":   role.ContentInfo,
	"search":        role.Search,
	"region":        role.Region,
	"form":          role.Form,
	"list":          role.List,
	"listitem":      role.ListItem,
	"table":         role.Table,
	"row":           role.Row,
	"cell":          role.Cell,
	"columnheader":  role.ColumnHeader,
	"paragraph":     role.Paragraph,
	"button":        role.Button,
	"link":          role.Link,
	"textbox":       role.TextBox,
	"checkbox":      role.Checkbox,
	"radio":         role.Radio,
	"combobox":      role.ComboBox,
	"option":        role.Option,
	"tab":           role.Tab,
	"tabpanel":      role.TabPanel,
	"dialog":        role.Dialog,
	"alert":         role.Alert,
	"menu":          role.Menu,
	"menuitem":      role.MenuItem,
	"separator":     role.Separator,
	"group":         role.Group,
}

// ariaRole returns the raw aria-role/role attribute token, lower-cased.
func ariaRole(n *html.Node) (string, bool) {
	if v, ok := attr(n, "aria-role"); ok && v != "" {
		return strings.ToLower(strings.TrimSpace(v)), true
	}
	if v, ok := attr(n, "role"); ok && v != "" {
		return strings.ToLower(strings.TrimSpace(v)), true
	}
	return "", false
}

// assignRole implements spec.md §4.1.2: aria-role/role attribute first, tag
// fallback otherwise.
func assignRole(n *html.Node) role.Role {
	if token, ok := ariaRole(n); ok {
		if r, ok := roleFromToken(n, token); ok {
			return r
		}
	}
	return roleFromTag(n)
}

func roleFromToken(n *html.Node, token string) (role.Role, bool) {
	switch token {
	case "heading":
		return role.NewHeading(ariaLevel(n)), true
	case "alertdialog":
		return role.Of(role.Dialog), true
	case "menuitemcheckbox", "menuitemradio":
		return role.Of(role.MenuItem), true
	case "grid":
		return role.Of(role.Table), true
	case "gridcell":
		return role.Of(role.Cell), true
	case "image":
		return role.Of(role.Img), true
	}
	if k, ok := ariaRoleTokens[token]; ok {
		return role.Of(k), true
	}
	return role.Role{}, false
}

func ariaLevel(n *html.Node) int {
	v, ok := attr(n, "aria-level")
	if !ok {
		return 2
	}
	lvl, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 2
	}
	return lvl
}

// roleFromTag implements the tag-driven fallback half of §4.1.2.
func roleFromTag(n *html.Node) role.Role {
	switch tagName(n) {
	case "button":
		return role.Of(role.Button)
	case "a":
		if hasAttr(n, "href") {
			return role.Of(role.Link)
		}
		return role.Of(role.Group)
	case "input":
		return roleFromInputType(n)
	case "textarea":
		return role.Of(role.TextBox)
	case "select":
		return role.Of(role.ComboBox)
	case "option":
		return role.Of(role.Option)
	case "h1":
		return role.NewHeading(1)
	case "h2":
		return role.NewHeading(2)
	case "h3":
		return role.NewHeading(3)
	case "h4":
		return role.NewHeading(4)
	case "h5":
		return role.NewHeading(5)
	case "h6":
		return role.NewHeading(6)
	case "nav":
		return role.Of(role.Navigation)
	case "main":
		return role.Of(role.Main)
	case "header":
		return role.Of(role.Banner)
	case "footer":
		return role.Of(role.ContentInfo)
	case "aside":
		return role.Of(role.Complementary)
	case "form":
		return role.Of(role.Form)
	case "ul", "ol":
		return role.Of(role.List)
	case "li":
		return role.Of(role.ListItem)
	case "table":
		return role.Of(role.Table)
	case "tr":
		return role.Of(role.Row)
	case "td":
		return role.Of(role.Cell)
	case "th":
		return role.Of(role.ColumnHeader)
	case "img":
		return role.Of(role.Img)
	case "dialog":
		return role.Of(role.Dialog)
	case "menu":
		return role.Of(role.Menu)
	case "hr":
		return role.Of(role.Separator)
	case "p":
		return role.Of(role.Paragraph)
	default:
		return role.Of(role.Group)
	}
}

func roleFromInputType(n *html.Node) role.Role {
	t, _ := attr(n, "type")
	switch strings.ToLower(strings.TrimSpace(t)) {
	case "submit", "reset", "button", "image":
		return role.Of(role.Button)
	case "checkbox":
		return role.Of(role.Checkbox)
	case "radio":
		return role.Of(role.Radio)
	default:
		return role.Of(role.TextBox)
	}
}
