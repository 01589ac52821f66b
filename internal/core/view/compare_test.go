// Copyright (c) 2026 Shelfy. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package view_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/shelfy/internal/core/view"
	"github.com/taibuivan/shelfy/pkg/pointer"
)

/*
TestCompareString covers case and diacritic folding and the three-way contract.
*/
func TestCompareString(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int // sign only
	}{
		{"identical", "Akira", "Akira", 0},
		{"case_insensitive", "ZETMAN", "zetman", 0},
		{"diacritic_insensitive", "café", "Cafe", 0},
		{"umlaut_folds_to_base", "Über", "uber", 0},
		{"both_empty", "", "", 0},
		{"alphabetical", "Akira", "Berserk", -1},
		{"alphabetical_mixed_case", "berserk", "Akira", 1},
		{"accent_does_not_reorder", "Émile", "Dorohedoro", 1},
		{"empty_before_text", "", "a", -1},
		{"prefix_before_longer", "Monster", "Monsters", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := view.CompareString(tt.a, tt.b)
			switch {
			case tt.want < 0:
				assert.Negative(t, got)
			case tt.want > 0:
				assert.Positive(t, got)
			default:
				assert.Zero(t, got)
			}

			// Antisymmetry
			reverse := view.CompareString(tt.b, tt.a)
			assert.Equal(t, sign(got), -sign(reverse))
		})
	}
}

/*
TestCompareString_NilAsEmpty verifies that absent optional fields compare as "".
*/
func TestCompareString_NilAsEmpty(t *testing.T) {
	var absent *string

	for _, other := range []string{"", "a", "Zetman"} {
		assert.Equal(t,
			sign(view.CompareString("", other)),
			sign(view.CompareString(pointer.Val(absent), other)),
		)
	}
}

/*
TestParseTimestamp checks accepted formats and the NaN sentinel.
*/
func TestParseTimestamp(t *testing.T) {
	ms := func(tm time.Time) float64 { return float64(tm.UnixMilli()) }

	valid := []struct {
		raw  string
		want float64
	}{
		{"2024-01-15", ms(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))},
		{"2024-01-15T10:30:00Z", ms(time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC))},
		{"2024-01-15T10:30:00.250Z", ms(time.Date(2024, 1, 15, 10, 30, 0, 250_000_000, time.UTC))},
		{"2024-01-15T10:30:00+02:00", ms(time.Date(2024, 1, 15, 8, 30, 0, 0, time.UTC))},
		{"2024-01-15T10:30:00", ms(time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC))},
		{"2024-01-15T10:30", ms(time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC))},
		{"2024-01", ms(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))},
		{"2024", ms(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))},
		{"  2024-01-15  ", ms(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))},
	}
	for _, tt := range valid {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, view.ParseTimestamp(tt.raw))
		})
	}

	invalid := []string{"", "   ", "not a date", "2024-13-01", "15/01/2024", "2024-02-30"}
	for _, raw := range invalid {
		t.Run("invalid_"+raw, func(t *testing.T) {
			assert.True(t, math.IsNaN(view.ParseTimestamp(raw)))
		})
	}
}

/*
TestParseTimestamp_Monotonic verifies that later dates parse to larger values.
*/
func TestParseTimestamp_Monotonic(t *testing.T) {
	ordered := []string{
		"1999",
		"2021-07-15",
		"2022-03-01T00:00:00Z",
		"2022-03-01T00:00:01Z",
		"2022-03-01T09:00:00+01:00",
		"2023-05-10",
		"2025-12",
	}

	for i := 1; i < len(ordered); i++ {
		earlier := view.ParseTimestamp(ordered[i-1])
		later := view.ParseTimestamp(ordered[i])
		assert.Less(t, earlier, later, "%s should precede %s", ordered[i-1], ordered[i])
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}
