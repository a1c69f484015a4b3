package locator

// ClickScript builds the click action script of §4.3: resolves el via the
// locator expression, strips target="_blank" from any enclosing anchor so
// the click cannot spawn a new tab, then dispatches a real click. Returns
// the literal "OK" or "NOT_FOUND".
func (l ElementLocator) ClickScript() string {
	return "(function(){" +
		"var el=" + l.Expression() + ";" +
		"if(!el) return 'NOT_FOUND';" +
		"var a=el.closest ? el.closest('a[target=\"_blank\"]') : null;" +
		"if(a) a.removeAttribute('target');" +
		"el.click();" +
		"return 'OK';})()"
}

// TypeTextScript builds the type-text action script of §4.3: focuses the
// element, sets its value, and dispatches bubbling input/change events.
func (l ElementLocator) TypeTextScript(text string) string {
	return "(function(){" +
		"var el=" + l.Expression() + ";" +
		"if(!el) return 'NOT_FOUND';" +
		"el.focus();" +
		"el.value=" + jsString(text) + ";" +
		"el.dispatchEvent(new Event('input',{bubbles:true}));" +
		"el.dispatchEvent(new Event('change',{bubbles:true}));" +
		"return 'OK';})()"
}

// SelectOptionScript builds the select-option action script of §4.3: sets
// value, dispatches a bubbling change event.
func (l ElementLocator) SelectOptionScript(value string) string {
	return "(function(){" +
		"var el=" + l.Expression() + ";" +
		"if(!el) return 'NOT_FOUND';" +
		"el.value=" + jsString(value) + ";" +
		"el.dispatchEvent(new Event('change',{bubbles:true}));" +
		"return 'OK';})()"
}
