// Copyright (c) 2026 Shelfy. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// ShelfCollectionTable represents the 'shelf.collection' table
type ShelfCollectionTable struct {
	Table       string
	ID          string
	UserID      string
	Name        string
	Slug        string
	Description string
	CreatedAt   string
	UpdatedAt   string
}

// ShelfCollection is the schema definition for shelf.collection
var ShelfCollection = ShelfCollectionTable{
	Table:       "shelf.collection",
	ID:          "id",
	UserID:      "userid",
	Name:        "name",
	Slug:        "slug",
	Description: "description",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// Columns returns every column in scan order.
func (t ShelfCollectionTable) Columns() []string {
	return []string{t.ID, t.UserID, t.Name, t.Slug, t.Description, t.CreatedAt, t.UpdatedAt}
}

// ShelfCollectionItemTable represents the 'shelf.collectionitem' table
type ShelfCollectionItemTable struct {
	Table        string
	CollectionID string
	VolumeID     string
	AddedAt      string
}

// ShelfCollectionItem is the schema definition for shelf.collectionitem
var ShelfCollectionItem = ShelfCollectionItemTable{
	Table:        "shelf.collectionitem",
	CollectionID: "collectionid",
	VolumeID:     "volumeid",
	AddedAt:      "addedat",
}
