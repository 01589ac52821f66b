// Copyright (c) 2026 Shelfy. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// ShelfSeriesTable represents the 'shelf.series' table
type ShelfSeriesTable struct {
	Table       string
	ID          string
	UserID      string
	Title       string
	Author      string
	Description string
	Status      string
	Type        string
	Tags        string
	CreatedAt   string
	UpdatedAt   string
}

// ShelfSeries is the schema definition for shelf.series
var ShelfSeries = ShelfSeriesTable{
	Table:       "shelf.series",
	ID:          "id",
	UserID:      "userid",
	Title:       "title",
	Author:      "author",
	Description: "description",
	Status:      "status",
	Type:        "type",
	Tags:        "tags",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// Columns returns every column in scan order.
func (t ShelfSeriesTable) Columns() []string {
	return []string{t.ID, t.UserID, t.Title, t.Author, t.Description, t.Status, t.Type, t.Tags, t.CreatedAt, t.UpdatedAt}
}
