// Package geo provides the static country → state → city lookup that drives
// the form's dependent selectors.
//
// The data is a read-only asset bundled with the binary. A Lookup is never
// mutated after construction, so it is safe to share across goroutines
// without synchronization and should be treated as an injected dependency
// rather than package-level state.
package geo

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"sync"

	pstrings "peoplebook/pkg/platform/strings"
)

//go:embed data/geography.json
var embeddedGeography []byte

// Lookup maps countries to their states and (country, state) pairs to their
// cities. Not every state has a city list; the form falls back to manual
// entry for those.
type Lookup struct {
	states map[string][]string
	cities map[string]map[string][]string
}

type lookupDoc struct {
	States map[string][]string            `json:"states"`
	Cities map[string]map[string][]string `json:"cities"`
}

// Load reads a lookup from JSON.
func Load(r io.Reader) (*Lookup, error) {
	var doc lookupDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode geography data: %w", err)
	}
	return fromDoc(doc), nil
}

// fromDoc sanitizes the decoded asset: blank and duplicate entries in the
// state and city lists are dropped, with the asset's ordering preserved.
func fromDoc(doc lookupDoc) *Lookup {
	l := &Lookup{
		states: make(map[string][]string, len(doc.States)),
		cities: make(map[string]map[string][]string, len(doc.Cities)),
	}
	for country, states := range doc.States {
		l.states[country] = pstrings.DedupeAndTrim(states)
	}
	for country, byState := range doc.Cities {
		clean := make(map[string][]string, len(byState))
		for state, cities := range byState {
			clean[state] = pstrings.DedupeAndTrim(cities)
		}
		l.cities[country] = clean
	}
	return l
}

var (
	defaultOnce   sync.Once
	defaultLookup *Lookup
)

// Default returns the lookup built from the bundled asset.
func Default() *Lookup {
	defaultOnce.Do(func() {
		var doc lookupDoc
		// The embedded asset is validated by tests; a decode failure here
		// means a broken build, not a runtime condition.
		if err := json.Unmarshal(embeddedGeography, &doc); err != nil {
			panic(fmt.Sprintf("geo: corrupt embedded geography data: %v", err))
		}
		defaultLookup = fromDoc(doc)
	})
	return defaultLookup
}

// Countries lists all known countries in sorted order.
func (l *Lookup) Countries() []string {
	out := make([]string, 0, len(l.states))
	for c := range l.states {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// StatesOf returns the states of a country in asset order, or nil for an
// unknown country.
func (l *Lookup) StatesOf(country string) []string {
	states := l.states[country]
	if states == nil {
		return nil
	}
	out := make([]string, len(states))
	copy(out, states)
	return out
}

// CitiesOf returns the cities of a (country, state) pair in asset order, or
// nil when no list exists.
func (l *Lookup) CitiesOf(country, state string) []string {
	byState := l.cities[country]
	if byState == nil {
		return nil
	}
	cities := byState[state]
	if cities == nil {
		return nil
	}
	out := make([]string, len(cities))
	copy(out, cities)
	return out
}

// HasCities reports whether a city list exists for the pair. When false, the
// form offers manual entry only.
func (l *Lookup) HasCities(country, state string) bool {
	byState, ok := l.cities[country]
	if !ok {
		return false
	}
	return len(byState[state]) > 0
}
