// Package reveal models the one-shot "section has scrolled into view" flag
// that gates each section's entrance animation.
//
// The browser runs the observer (public/static/app.js); the server uses the
// same rules to decide a section's initial state, e.g. crawlers get every
// section pre-revealed.
package reveal

import (
	"sort"
	"strconv"
	"strings"
)

// DefaultThreshold is the fraction of a section that must be in view.
const DefaultThreshold = 0.2

// Entry is one observation of an element against the viewport.
type Entry struct {
	Intersecting bool
	Ratio        float64
}

// Latch flips to visible the first time an intersecting entry meets the
// threshold and never flips back.
type Latch struct {
	threshold float64
	visible   bool
	detached  bool
}

// NewLatch returns a latch for threshold; values outside (0,1] use DefaultThreshold.
func NewLatch(threshold float64) *Latch {
	return &Latch{threshold: normalizeThreshold(threshold)}
}

// Observe feeds one entry and returns the (possibly updated) flag.
func (l *Latch) Observe(e Entry) bool {
	if l.detached || l.visible {
		return l.visible
	}
	if e.Intersecting && e.Ratio >= l.threshold {
		l.visible = true
	}
	return l.visible
}

// Visible reports whether the latch has fired.
func (l *Latch) Visible() bool { return l.visible }

// Threshold returns the latch's visibility threshold.
func (l *Latch) Threshold() float64 { return l.threshold }

// Detach stops observation; later entries are ignored.
func (l *Latch) Detach() { l.detached = true }

// Detached reports whether Detach was called.
func (l *Latch) Detached() bool { return l.detached }

// Tracker holds the latches of one rendered page, keyed by section id.
type Tracker struct {
	threshold float64
	latches   map[string]*Latch
	all       bool
}

// NewTracker returns an empty tracker using threshold for every section.
func NewTracker(threshold float64) *Tracker {
	return &Tracker{threshold: normalizeThreshold(threshold), latches: map[string]*Latch{}}
}

// Section returns the latch for id, creating it on first use.
func (t *Tracker) Section(id string) *Latch {
	if l, ok := t.latches[id]; ok {
		return l
	}
	l := NewLatch(t.threshold)
	t.latches[id] = l
	return l
}

// Visible reports whether section id has been revealed.
func (t *Tracker) Visible(id string) bool {
	l, ok := t.latches[id]
	return ok && l.Visible()
}

// RevealAll marks every known section, and any section requested later, as visible.
func (t *Tracker) RevealAll() {
	for _, id := range t.Sections() {
		t.latches[id].Observe(Entry{Intersecting: true, Ratio: 1})
	}
	t.all = true
}

// DetachAll detaches every latch, as when the page is torn down.
func (t *Tracker) DetachAll() {
	for _, l := range t.latches {
		l.Detach()
	}
}

// Sections returns the known section ids, sorted.
func (t *Tracker) Sections() []string {
	ids := make([]string, 0, len(t.latches))
	for id := range t.latches {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Threshold is the threshold handed to the browser observer.
func (t *Tracker) Threshold() string {
	return strconv.FormatFloat(t.threshold, 'f', -1, 64)
}

// Class registers section id and returns its CSS classes for the initial render.
func (t *Tracker) Class(id string) string {
	l := t.Section(id)
	if t.all {
		l.Observe(Entry{Intersecting: true, Ratio: 1})
	}
	if l.Visible() {
		return "reveal is-visible"
	}
	return "reveal"
}

var crawlerMarkers = []string{"bot", "crawler", "spider", "slurp", "facebookexternalhit", "embedly", "preview"}

// IsCrawler reports whether userAgent looks like an indexer or link unfurler.
func IsCrawler(userAgent string) bool {
	ua := strings.ToLower(userAgent)
	if ua == "" {
		return false
	}
	for _, m := range crawlerMarkers {
		if strings.Contains(ua, m) {
			return true
		}
	}
	return false
}

func normalizeThreshold(th float64) float64 {
	if th <= 0 || th > 1 {
		return DefaultThreshold
	}
	return th
}
