package exclusions

import (
	"strings"
	"time"
)

// Wildcard excludes every genre for a country in the country map.
const Wildcard = "*"

// Filter decides whether a catalog item should be skipped before any
// artwork is downloaded. All rules are optional; a zero Filter keeps
// everything.
type Filter struct {
	// Genres excludes items carrying any of these genre names.
	Genres []string
	// Keywords excludes items whose keyword list contains any of these
	// (compared lowercase).
	Keywords []string
	// Countries maps lowercase ISO 3166-1 alpha-2 codes to the genres
	// excluded for that origin country; Wildcard excludes the country
	// outright.
	Countries map[string][]string
	// StaleBefore excludes items whose release or last-air date falls
	// before this cutoff. Zero disables the check.
	StaleBefore time.Time
}

// NewFilter builds a Filter with a stale cutoff of now minus staleAfterDays.
// A non-positive day count disables the cutoff.
func NewFilter(genres, keywords []string, countries map[string][]string, staleAfterDays int) *Filter {
	f := &Filter{
		Genres:    genres,
		Keywords:  keywords,
		Countries: countries,
	}
	if staleAfterDays > 0 {
		f.StaleBefore = time.Now().AddDate(0, 0, -staleAfterDays)
	}
	return f
}

// ExcludedByGenre reports whether any of the item's genres is on the
// exclusion list.
func (f *Filter) ExcludedByGenre(genres []string) bool {
	if f == nil || len(f.Genres) == 0 {
		return false
	}
	for _, g := range genres {
		for _, excluded := range f.Genres {
			if strings.EqualFold(g, excluded) {
				return true
			}
		}
	}
	return false
}

// ExcludedByKeyword reports whether any item keyword is on the exclusion
// list. Keywords are expected lowercase; the comparison folds case anyway.
func (f *Filter) ExcludedByKeyword(keywords []string) bool {
	if f == nil || len(f.Keywords) == 0 {
		return false
	}
	for _, k := range keywords {
		for _, excluded := range f.Keywords {
			if strings.EqualFold(k, excluded) {
				return true
			}
		}
	}
	return false
}

// ExcludedByCountry reports whether the item's origin countries and genres
// match the country exclusion map.
func (f *Filter) ExcludedByCountry(countries, genres []string) bool {
	if f == nil || len(f.Countries) == 0 {
		return false
	}
	for _, country := range countries {
		excluded, ok := f.Countries[strings.ToLower(country)]
		if !ok {
			continue
		}
		if len(excluded) == 1 && excluded[0] == Wildcard {
			return true
		}
		for _, eg := range excluded {
			for _, g := range genres {
				if strings.EqualFold(g, eg) {
					return true
				}
			}
		}
	}
	return false
}

// Stale reports whether a release or last-air date in "YYYY-MM-DD" form
// falls before the cutoff. Empty or unparseable dates are never stale.
func (f *Filter) Stale(date string) bool {
	if f == nil || f.StaleBefore.IsZero() || date == "" {
		return false
	}
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return false
	}
	return t.Before(f.StaleBefore)
}

// KeywordLookup fetches an item's keywords on demand; sources pass a closure
// over their catalog client so the extra request only happens when a keyword
// rule is configured.
type KeywordLookup func() ([]string, error)

// Excluded applies every configured rule. The keyword lookup is only invoked
// when keyword rules exist; a lookup error keeps the item.
func (f *Filter) Excluded(countries, genres []string, date string, keywords KeywordLookup) bool {
	if f == nil {
		return false
	}
	if f.ExcludedByCountry(countries, genres) {
		return true
	}
	if f.ExcludedByGenre(genres) {
		return true
	}
	if f.Stale(date) {
		return true
	}
	if len(f.Keywords) > 0 && keywords != nil {
		if kws, err := keywords(); err == nil && f.ExcludedByKeyword(kws) {
			return true
		}
	}
	return false
}
