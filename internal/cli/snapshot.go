// Copyright (c) 2026 Shelfy. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/taibuivan/shelfy/internal/core/library"
)

// snapshotFile is the on-disk layout: series with nested volumes, plus orphans.
type snapshotFile struct {
	Series  []*library.Series `yaml:"series"`
	Orphans []*library.Volume `yaml:"orphans"`
}

/*
LoadSnapshot reads a YAML snapshot file.

Description: Unknown keys are rejected so typos in hand-written files surface
instead of silently disabling a field. Nested volumes are re-linked to their
series and every list is non-nil.

Parameters:
  - path: string ("-" reads stdin)
  - stdin: io.Reader

Returns:
  - *library.Snapshot
  - error: I/O or YAML errors
*/
func LoadSnapshot(path string, stdin io.Reader) (*library.Snapshot, error) {
	var (
		payload []byte
		err     error
	)
	if path == "-" {
		payload, err = io.ReadAll(stdin)
	} else {
		payload, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("cli: read snapshot: %w", err)
	}

	return DecodeSnapshot(payload)
}

// DecodeSnapshot parses YAML snapshot bytes. An empty document is an empty shelf.
func DecodeSnapshot(payload []byte) (*library.Snapshot, error) {
	var file snapshotFile

	decoder := yaml.NewDecoder(bytes.NewReader(payload))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("cli: decode snapshot: %w", err)
	}

	volumes := make([]*library.Volume, 0)
	for _, series := range file.Series {
		for _, volume := range series.Volumes {
			id := series.ID
			volume.SeriesID = &id
			volumes = append(volumes, volume)
		}
		if series.Tags == nil {
			series.Tags = []string{}
		}
	}
	for _, orphan := range file.Orphans {
		orphan.SeriesID = nil
		volumes = append(volumes, orphan)
	}

	return library.BuildSnapshot(file.Series, volumes), nil
}
