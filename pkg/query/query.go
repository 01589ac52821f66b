// Copyright (c) 2026 Shelfy. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package query parses list-valued URL query parameters.
package query

import (
	"strconv"
	"strings"
)

// Int parses a single integer parameter, returning def when empty or invalid.
func Int(val string, def int) int {
	if i, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
		return i
	}
	return def
}

// Strings flattens repeated and comma-separated values of one parameter,
// so "?tag=a,b&tag=c" yields [a b c].
func Strings(vals []string) []string {
	var res []string
	for _, v := range vals {
		res = append(res, StringSlice(v)...)
	}
	return res
}

// StringSlice parses a single comma-separated query string
// into a trimmed slice of strings.
func StringSlice(val string) []string {
	if val == "" {
		return nil
	}
	var res []string
	for _, v := range strings.Split(val, ",") {
		clean := strings.TrimSpace(v)
		if clean != "" {
			res = append(res, clean)
		}
	}
	return res
}
