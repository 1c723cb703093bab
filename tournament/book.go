/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tournament

import (
	"encoding/json"
	"fmt"
	"sync"
)

// OpeningBook is a source of opening moves. One book is usually shared by
// many players and is owned by whoever created it, not by the players.
// Player.UnmarshalJSON reloads a shared book in place, so callers must not
// rehydrate two players sharing a book concurrently unless the book
// serializes its own mutation the way FileBook does.
type OpeningBook interface {
	json.Marshaler
	json.Unmarshaler
}

type BookFormat string

const (
	BookFormatPolyglot BookFormat = "polyglot"
	BookFormatPGN      BookFormat = "pgn"
	BookFormatEPD      BookFormat = "epd"
)

type BookMode string

const (
	BookModeRandom BookMode = "random"
	BookModeBest   BookMode = "best"
)

// FileBook is an OpeningBook backed by a file on disk. Only the reference is
// modelled here; reading positions from the file is the game runner's job.
type FileBook struct {
	mu     sync.Mutex
	path   string
	format BookFormat
	mode   BookMode
}

var _ OpeningBook = (*FileBook)(nil)

func NewFileBook(path string, format BookFormat, mode BookMode) *FileBook {
	return &FileBook{
		path:   path,
		format: format,
		mode:   mode,
	}
}

func (b *FileBook) Path() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.path
}

func (b *FileBook) Format() BookFormat {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.format
}

func (b *FileBook) Mode() BookMode {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.mode
}

type fileBookJSON struct {
	File   *string     `json:"file,omitempty"`
	Format *BookFormat `json:"format,omitempty"`
	Mode   *BookMode   `json:"mode,omitempty"`
}

func (b *FileBook) MarshalJSON() ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return json.Marshal(fileBookJSON{
		File:   &b.path,
		Format: &b.format,
		Mode:   &b.mode,
	})
}

func (b *FileBook) UnmarshalJSON(data []byte) error {
	var in fileBookJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("unable to parse opening book: %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if in.File != nil {
		b.path = *in.File
	}
	if in.Format != nil {
		b.format = *in.Format
	}
	if in.Mode != nil {
		b.mode = *in.Mode
	}

	return nil
}
