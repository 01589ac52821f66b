// Copyright (c) 2026 Shelfy. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package view_test

import (
	"time"

	"github.com/taibuivan/shelfy/internal/core/library"
	"github.com/taibuivan/shelfy/pkg/pointer"
)

var epoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// newSeries builds a series and attaches the given volumes to it.
func newSeries(id, title string, volumes ...*library.Volume) *library.Series {
	series := &library.Series{
		ID:        id,
		Title:     title,
		Tags:      []string{},
		CreatedAt: epoch,
		UpdatedAt: epoch,
		Volumes:   volumes,
	}
	for _, volume := range volumes {
		volume.SeriesID = pointer.To(id)
	}
	return series
}

// newVolume builds an owned, unread volume.
func newVolume(id string, number int) *library.Volume {
	return &library.Volume{
		ID:        id,
		Number:    number,
		Ownership: library.OwnershipOwned,
		Reading:   library.ReadingUnread,
		CreatedAt: epoch,
		UpdatedAt: epoch,
	}
}

func rated(volume *library.Volume, rating float64) *library.Volume {
	volume.Rating = pointer.To(rating)
	return volume
}

func priced(volume *library.Volume, price float64) *library.Volume {
	volume.Price = pointer.To(price)
	return volume
}

func started(volume *library.Volume, date string) *library.Volume {
	volume.StartedAt = pointer.To(date)
	return volume
}

func finished(volume *library.Volume, date string) *library.Volume {
	volume.FinishedAt = pointer.To(date)
	return volume
}

func titles(series []*library.Series) []string {
	out := make([]string, len(series))
	for i, entry := range series {
		out[i] = entry.Title
	}
	return out
}

func ids(series []*library.Series) []string {
	out := make([]string, len(series))
	for i, entry := range series {
		out[i] = entry.ID
	}
	return out
}

func volumeIDs(volumes []*library.Volume) []string {
	out := make([]string, len(volumes))
	for i, volume := range volumes {
		out[i] = volume.ID
	}
	return out
}

// shelf is a small but tie-heavy collection used by the sort property tests.
func shelf() []*library.Series {
	akira := newSeries("s-akira", "Akira",
		started(rated(priced(newVolume("v-akira-1", 1), 12.5), 2), "2022-03-01"),
		finished(rated(priced(newVolume("v-akira-2", 2), 12.5), 4), "2023-05-10"),
	)
	akira.Author = pointer.To("Otomo Katsuhiro")
	akira.CreatedAt = epoch.Add(2 * time.Hour)

	berserk := newSeries("s-berserk", "Berserk",
		started(rated(priced(newVolume("v-berserk-1", 1), 9), 5), "2021-07-15"),
	)
	berserk.Author = pointer.To("Miura Kentaro")
	berserk.CreatedAt = epoch.Add(1 * time.Hour)

	zetman := newSeries("s-zetman", "Zetman", newVolume("v-zetman-1", 1))
	zetman.Author = pointer.To("Katsura Masakazu")

	// Ties with Akira on average rating (3) and with Berserk on volume count.
	dorohedoro := newSeries("s-dorohedoro", "Dorohedoro",
		rated(newVolume("v-doro-1", 1), 3),
	)
	dorohedoro.Author = pointer.To("Hayashida Q")

	// Duplicate title, different identity.
	monster := newSeries("s-monster-a", "Monster", rated(newVolume("v-monster-a", 1), 4))
	monsterDup := newSeries("s-monster-b", "monster", rated(newVolume("v-monster-b", 1), 4))

	empty := newSeries("s-empty", "Émile et les volumes")

	return []*library.Series{zetman, monsterDup, akira, empty, berserk, monster, dorohedoro}
}
