// Copyright (c) 2026 Shelfy. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package collection manages user-defined custom lists of volumes.

A collection is a named set of volume IDs. Selecting one on the library view
restricts the result to its members, so the package only needs to answer
"which volumes belong here"; it never loads volume details itself.
*/
package collection

import (
	"context"
	"time"
)

// Collection is a named set of volumes owned by one user.
type Collection struct {
	ID          string    `json:"id"`
	UserID      string    `json:"-"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"` // Unique per user
	Description *string   `json:"description,omitempty"`
	VolumeIDs   []string  `json:"volume_ids"` // Ordered by when they were added
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Repository persists collections and their membership rows.
type Repository interface {
	List(context context.Context, userID string) ([]*Collection, error)
	FindByID(context context.Context, userID, id string) (*Collection, error)
	FindBySlug(context context.Context, userID, slug string) (*Collection, error)
	Create(context context.Context, collection *Collection) error
	Delete(context context.Context, userID, id string) error

	// AddVolume is idempotent. It returns NotFound when either the collection
	// or the volume does not belong to the user.
	AddVolume(context context.Context, userID, collectionID, volumeID string) error
	RemoveVolume(context context.Context, userID, collectionID, volumeID string) error
}
