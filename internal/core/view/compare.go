// Copyright (c) 2026 Shelfy. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package view is the filter-and-sort engine behind every shelf listing.

Given a [library.Snapshot], a [Filter] and a [Sort], it decides which series
and volumes are visible and in what order. The engine is a pure function of
its inputs: it performs no I/O, holds no package-level mutable state and never
mutates the entities it receives.

Pipeline:

  - Caches: aggregate sort keys (average rating, total price, reading dates)
    are computed once per pass, never per comparison.
  - Predicates: per-entity tests composed with short-circuiting AND.
  - Sorting: primary key scaled by direction, then a fixed ascending
    tie-break chain so the result does not depend on input order.
*/
package view

import (
	"math"
	"strings"
	"sync"
	"time"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// # String Comparison

// collators holds root-locale collators. A [collate.Collator] keeps internal
// buffers and must not be shared between goroutines.
var collators = sync.Pool{
	New: func() any {
		return collate.New(language.Und, collate.IgnoreCase, collate.IgnoreDiacritics)
	},
}

// foldKey reduces s to its base letters: accents are stripped and case is folded.
func foldKey(s string) string {
	if s == "" {
		return ""
	}

	chain := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(chain, s)
	if err != nil {
		stripped = s
	}

	return cases.Fold().String(stripped)
}

// stringComparer compares strings on their folded keys and memoizes every key
// it computes. One comparer serves one sort pass.
type stringComparer struct {
	keys     map[string]string
	collator *collate.Collator
}

func newStringComparer() *stringComparer {
	return &stringComparer{
		keys:     make(map[string]string),
		collator: collators.Get().(*collate.Collator),
	}
}

// release returns the collator to the pool. The comparer must not be used afterwards.
func (c *stringComparer) release() {
	collators.Put(c.collator)
	c.collator = nil
}

func (c *stringComparer) key(s string) string {
	if k, ok := c.keys[s]; ok {
		return k
	}
	k := foldKey(s)
	c.keys[s] = k
	return k
}

// compare returns 0 iff both strings fold to the same key.
func (c *stringComparer) compare(a, b string) int {
	ka, kb := c.key(a), c.key(b)
	if ka == kb {
		return 0
	}

	if result := c.collator.CompareString(ka, kb); result != 0 {
		return result
	}

	// The collator ignores some code points entirely; keep distinct keys distinct.
	return strings.Compare(ka, kb)
}

// CompareString compares a and b ignoring case and diacritics ("café" equals
// "Cafe"). Callers pass absent optional fields as the empty string.
//
// It returns a negative number, zero or a positive number following the
// usual three-way contract.
func CompareString(a, b string) int {
	comparer := newStringComparer()
	defer comparer.release()
	return comparer.compare(a, b)
}

// # Timestamps

// timestampLayouts lists accepted date formats, most specific first.
// Values without an explicit offset are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	time.DateOnly,
	"2006-01",
	"2006",
}

// ParseTimestamp converts an ISO-8601-like date or date-time to epoch
// milliseconds. It returns NaN for empty or unparseable input and never panics.
func ParseTimestamp(raw string) float64 {
	value := strings.TrimSpace(raw)
	if value == "" {
		return math.NaN()
	}

	for _, layout := range timestampLayouts {
		parsed, err := time.ParseInLocation(layout, value, time.UTC)
		if err == nil {
			return float64(parsed.UnixMilli())
		}
	}

	return math.NaN()
}

// timestampOrZero is [ParseTimestamp] for sort keys: a missing or invalid
// date becomes 0 so it orders before any real date.
func timestampOrZero(raw *string) float64 {
	if raw == nil {
		return 0
	}
	ts := ParseTimestamp(*raw)
	if math.IsNaN(ts) {
		return 0
	}
	return ts
}
