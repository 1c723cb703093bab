/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package archive

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/charmbracelet/log"
	"github.com/mikeb26/enginetourney/internal/metrics"
	"github.com/mikeb26/enginetourney/tournament"
)

var (
	ErrNotFound    = errors.New("document not found")
	ErrReadOnly    = errors.New("document store is read-only")
	ErrInvalidName = errors.New("invalid document name")
	ErrNotListable = errors.New("document store cannot list documents")
)

// DocumentStore persists named tournament documents.
type DocumentStore interface {
	// Load returns the named document or an error wrapping ErrNotFound.
	Load(ctx context.Context, name string) ([]byte, error)
	Save(ctx context.Context, name string, data []byte) error
}

// Lister is implemented by stores which can enumerate their documents.
type Lister interface {
	List(ctx context.Context) ([]string, error)
}

var validName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateName rejects names which could escape a store's namespace.
func ValidateName(name string) error {
	if !validName.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	return nil
}

// Archive loads and stores whole tournaments by name on top of a
// DocumentStore.
type Archive struct {
	store     DocumentStore
	storeName string
	manager   tournament.GameManager
	metrics   metrics.Metrics
}

// New returns an Archive over store. storeName labels the metrics and log
// entries. manager is handed to every loaded tournament and may be nil; a
// nil m discards metrics.
func New(store DocumentStore, storeName string, manager tournament.GameManager,
	m metrics.Metrics) *Archive {

	if m == nil {
		m = metrics.Nop{}
	}

	return &Archive{
		store:     store,
		storeName: storeName,
		manager:   manager,
		metrics:   m,
	}
}

// Get loads the named tournament.
func (a *Archive) Get(ctx context.Context, name string) (tournament.Tournament, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	data, err := a.store.Load(ctx, name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			a.metrics.IncArchiveOp(metrics.OpGet, a.storeName, metrics.ResultNotFound)
			log.Debug("archive.get: no such document", "store", a.storeName, "name", name)
		} else {
			a.metrics.IncArchiveOp(metrics.OpGet, a.storeName, metrics.ResultError)
			log.Error("archive.get: load failed", "store", a.storeName, "name",
				name, "error", err)
		}
		return nil, err
	}
	a.metrics.ObserveDocumentBytes(metrics.OpGet, len(data))

	t, err := tournament.Load(data, a.manager)
	if err != nil {
		a.metrics.IncArchiveOp(metrics.OpGet, a.storeName, metrics.ResultError)
		log.Error("archive.get: invalid tournament document", "store",
			a.storeName, "name", name, "error", err)
		return nil, fmt.Errorf("%v: %w", name, err)
	}
	a.metrics.IncArchiveOp(metrics.OpGet, a.storeName, metrics.ResultOK)
	a.metrics.IncTournamentsLoaded(string(t.Type()))

	return t, nil
}

// Put stores t under name, replacing any prior version.
func (a *Archive) Put(ctx context.Context, name string, t tournament.Tournament) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	data, err := tournament.Marshal(t)
	if err != nil {
		a.metrics.IncArchiveOp(metrics.OpPut, a.storeName, metrics.ResultError)
		log.Error("archive.put: unable to serialize tournament", "name", name,
			"error", err)
		return err
	}

	err = a.store.Save(ctx, name, data)
	if err != nil {
		a.metrics.IncArchiveOp(metrics.OpPut, a.storeName, metrics.ResultError)
		log.Error("archive.put: save failed", "store", a.storeName, "name",
			name, "error", err)
		return err
	}
	a.metrics.IncArchiveOp(metrics.OpPut, a.storeName, metrics.ResultOK)
	a.metrics.ObserveDocumentBytes(metrics.OpPut, len(data))
	log.Debug("archive.put: stored tournament", "store", a.storeName, "name",
		name, "bytes", len(data))

	return nil
}

// List returns the names of the archived documents if the underlying store
// supports it.
func (a *Archive) List(ctx context.Context) ([]string, error) {
	lister, ok := a.store.(Lister)
	if !ok {
		return nil, fmt.Errorf("%v: %w", a.storeName, ErrNotListable)
	}

	return lister.List(ctx)
}
