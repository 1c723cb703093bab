/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tournament

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/charmbracelet/log"
)

// Type is the tag identifying a tournament variant in serialized form.
type Type string

const (
	RoundRobinType Type = "round-robin"
	GauntletType   Type = "gauntlet"
	KnockoutType   Type = "knockout"
	PyramidType    Type = "pyramid"
)

var registry = map[Type]func(GameManager) Tournament{
	RoundRobinType: func(m GameManager) Tournament { return NewRoundRobin(m) },
	GauntletType:   func(m GameManager) Tournament { return NewGauntlet(m) },
	KnockoutType:   func(m GameManager) Tournament { return NewKnockout(m) },
	PyramidType:    func(m GameManager) Tournament { return NewPyramid(m) },
}

// Types returns the registered tags in sorted order.
func Types() []Type {
	ret := make([]Type, 0, len(registry))
	for t := range registry {
		ret = append(ret, t)
	}
	slices.Sort(ret)

	return ret
}

// Create returns a new, empty tournament of type t, or nil when t is not a
// registered tag. manager may be nil.
func Create(t Type, manager GameManager) Tournament {
	ctor, ok := registry[t]
	if !ok {
		return nil
	}

	return ctor(manager)
}

// Load builds a tournament from a JSON document. The document's "type"
// selects the variant which then populates itself from the rest of the
// document. On any failure no tournament is returned.
func Load(data []byte, manager GameManager) (Tournament, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		log.Warn("tournament.load: document root is not an object")
		return nil, ErrNotObject
	}

	var root struct {
		Type Type `json:"type"`
	}
	if err := json.Unmarshal(trimmed, &root); err != nil {
		log.Warn("tournament.load: unable to parse document", "error", err)
		return nil, fmt.Errorf("unable to parse tournament: %w", err)
	}

	t := Create(root.Type, manager)
	if t == nil {
		log.Warn("tournament.load: unresolved tournament type", "type", root.Type)
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, root.Type)
	}
	if err := t.UnmarshalJSON(trimmed); err != nil {
		log.Warn("tournament.load: unable to populate tournament", "type",
			root.Type, "error", err)
		return nil, err
	}

	return t, nil
}

// LoadFromFile reads a tournament document from path; see Load.
func LoadFromFile(path string, manager GameManager) (Tournament, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn("tournament.loadfile: unable to read file", "path", path,
			"error", err)
		return nil, err
	}

	t, err := Load(data, manager)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", path, err)
	}

	return t, nil
}

// StoreToFile writes t to path as an indented JSON document. The document
// is written to a temporary file in the same directory and renamed into
// place so an existing file is never left truncated.
func StoreToFile(path string, t Tournament) error {
	if t == nil {
		log.Warn("tournament.store: nil tournament", "path", path)
		return ErrNilTournament
	}

	data, err := Marshal(t)
	if err != nil {
		log.Warn("tournament.store: unable to serialize tournament", "id",
			t.ID(), "error", err)
		return err
	}

	err = WriteFileAtomic(path, data)
	if err != nil {
		log.Warn("tournament.store: unable to write file", "path", path,
			"error", err)
		return err
	}

	return nil
}

// Marshal returns the indented JSON document for t.
func Marshal(t Tournament) ([]byte, error) {
	if t == nil {
		return nil, ErrNilTournament
	}
	raw, err := t.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("unable to serialize %v tournament: %w",
			t.Type(), err)
	}

	var out bytes.Buffer
	err = json.Indent(&out, raw, "", "  ")
	if err != nil {
		return nil, err
	}
	out.WriteByte('\n')

	return out.Bytes(), nil
}

// WriteFileAtomic replaces the contents of path with data via a temporary
// file in the same directory.
func WriteFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	err = tmp.Chmod(0644)
	if err == nil {
		_, err = tmp.Write(data)
	}
	if err == nil {
		err = tmp.Sync()
	}
	closeErr := tmp.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Rename(tmpName, path)
	}
	if err != nil {
		_ = os.Remove(tmpName)
		return err
	}

	return nil
}
