// Copyright (c) 2026 Shelfy. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema names the tables and columns of the shelf schema so that
// stores build their SQL from one definition.
package schema

import "strings"

// List joins columns for a SELECT or INSERT column list, optionally qualified
// with a table alias.
func List(alias string, columns []string) string {
	if alias == "" {
		return strings.Join(columns, ", ")
	}

	qualified := make([]string, len(columns))
	for i, column := range columns {
		qualified[i] = alias + "." + column
	}
	return strings.Join(qualified, ", ")
}
