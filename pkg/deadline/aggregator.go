package deadline

import "sort"

// Notifier consumes one-shot alert signals. Delivery failures are logged by
// the caller and never retried; the tracker latch still counts the alert as
// fired so a flaky sink cannot cause duplicate audio.
type Notifier interface {
	Notify(sig Signal) error
}

// Aggregator maintains the current approaching/overdue subject name sets for
// the alert banner. Names are deduplicated, so two entries sharing a display
// name merge into a single banner item.
type Aggregator struct {
	approaching map[string]struct{}
	overdue     map[string]struct{}
}

func NewAggregator() *Aggregator {
	return &Aggregator{
		approaching: map[string]struct{}{},
		overdue:     map[string]struct{}{},
	}
}

// Rebuild recomputes both sets from the live tracker collection and reports
// whether either set's membership changed since the previous rebuild. The
// dirty flag lets the presentation skip redundant banner redraws.
func (a *Aggregator) Rebuild(trackers []*Tracker) bool {
	approaching := make(map[string]struct{})
	overdue := make(map[string]struct{})
	for _, t := range trackers {
		switch t.Status() {
		case StatusWarning:
			approaching[t.Name()] = struct{}{}
		case StatusOverdue:
			overdue[t.Name()] = struct{}{}
		}
	}

	changed := !sameSet(a.approaching, approaching) || !sameSet(a.overdue, overdue)
	a.approaching = approaching
	a.overdue = overdue
	return changed
}

// Reset clears both sets, used when the tracker collection is rebuilt.
func (a *Aggregator) Reset() {
	a.approaching = map[string]struct{}{}
	a.overdue = map[string]struct{}{}
}

// Approaching returns the warning-state subject names, sorted for stable
// rendering.
func (a *Aggregator) Approaching() []string {
	return sortedNames(a.approaching)
}

// Overdue returns the overdue subject names, sorted for stable rendering.
func (a *Aggregator) Overdue() []string {
	return sortedNames(a.overdue)
}

func sortedNames(set map[string]struct{}) []string {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sameSet(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}
