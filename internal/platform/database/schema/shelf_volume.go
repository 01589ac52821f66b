// Copyright (c) 2026 Shelfy. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// ShelfVolumeTable represents the 'shelf.volume' table
type ShelfVolumeTable struct {
	Table       string
	ID          string
	UserID      string
	SeriesID    string
	Number      string
	Title       string
	Description string
	ISBN        string
	CoverURL    string
	Ownership   string
	Reading     string
	Rating      string
	Price       string
	PageCount   string
	StartedAt   string
	FinishedAt  string
	CreatedAt   string
	UpdatedAt   string
}

// ShelfVolume is the schema definition for shelf.volume
var ShelfVolume = ShelfVolumeTable{
	Table:       "shelf.volume",
	ID:          "id",
	UserID:      "userid",
	SeriesID:    "seriesid",
	Number:      "number",
	Title:       "title",
	Description: "description",
	ISBN:        "isbn",
	CoverURL:    "coverurl",
	Ownership:   "ownership",
	Reading:     "reading",
	Rating:      "rating",
	Price:       "price",
	PageCount:   "pagecount",
	StartedAt:   "startedat",
	FinishedAt:  "finishedat",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// Columns returns every column in scan order.
func (t ShelfVolumeTable) Columns() []string {
	return []string{
		t.ID, t.UserID, t.SeriesID, t.Number, t.Title, t.Description, t.ISBN, t.CoverURL,
		t.Ownership, t.Reading, t.Rating, t.Price, t.PageCount, t.StartedAt, t.FinishedAt,
		t.CreatedAt, t.UpdatedAt,
	}
}
