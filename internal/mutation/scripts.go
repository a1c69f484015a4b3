// Package mutation holds the page-side JS contract that lets the session
// layer avoid a full re-snapshot on every action (spec.md §4.4): a mutation
// observer, a dirty/count probe, a viewport probe, scroll scripts, and a
// dynamic visibility probe. The approach mirrors the teacher's inline
// page-script evaluation idiom (cpunion-agent-browser-go/chromedp_backend.go
// Hover, which computes element geometry via an ad hoc Evaluate script) but
// here the scripts are named constants with a stable, documented global-name
// contract instead of one-off literals.
package mutation

// Global names the install-observer script installs on window, queried by
// the dirty-check and reset scripts.
const (
	ObserverVar      = "__cortex_observer"
	DirtyVar         = "__cortex_dirty"
	MutationCountVar = "__cortex_mutation_count"
)

// InstallObserverScript disconnects any prior observer, zeros the dirty flag
// and mutation counter, and installs a MutationObserver on body (or
// documentElement if body is absent) watching childList, attributes,
// characterData, subtree (§4.4).
const InstallObserverScript = `(function(){
if (window.` + ObserverVar + `) { window.` + ObserverVar + `.disconnect(); }
window.` + DirtyVar + ` = false;
window.` + MutationCountVar + ` = 0;
var target = document.body || document.documentElement;
var obs = new MutationObserver(function(mutations){
  window.` + DirtyVar + ` = true;
  window.` + MutationCountVar + ` += mutations.length;
});
obs.observe(target, {childList:true, attributes:true, characterData:true, subtree:true});
window.` + ObserverVar + ` = obs;
return 'OK';
})()`

// CheckDirtyScript returns {dirty, count} (§4.4).
const CheckDirtyScript = `(function(){
return JSON.stringify({dirty: !!window.` + DirtyVar + `, count: window.` + MutationCountVar + `||0});
})()`

// ResetDirtyScript zeros the flag and count (§4.4).
const ResetDirtyScript = `(function(){
window.` + DirtyVar + ` = false;
window.` + MutationCountVar + ` = 0;
return 'OK';
})()`

// ViewportProbeScript returns {scrollY, viewportHeight, documentHeight},
// each rounded to integer CSS pixels (§4.4).
const ViewportProbeScript = `(function(){
var doc = document.documentElement;
return JSON.stringify({
  scrollY: Math.round(window.scrollY||0),
  viewportHeight: Math.round(window.innerHeight||doc.clientHeight||0),
  documentHeight: Math.round(Math.max(doc.scrollHeight||0, document.body ? document.body.scrollHeight||0 : 0))
});
})()`

// ScrollDownScript scrolls down by 85% of the viewport height (§4.4).
const ScrollDownScript = `(function(){
var h = window.innerHeight||document.documentElement.clientHeight||0;
window.scrollBy(0, Math.round(h*0.85));
return 'OK';
})()`

// ScrollUpScript scrolls up by 85% of the viewport height.
const ScrollUpScript = `(function(){
var h = window.innerHeight||document.documentElement.clientHeight||0;
window.scrollBy(0, -Math.round(h*0.85));
return 'OK';
})()`
