/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                sync.Mutex
	archiveOps        map[string]int
	documentBytes     map[string][]int
	tournamentsLoaded map[string]int
}

var _ Metrics = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		archiveOps:        make(map[string]int),
		documentBytes:     make(map[string][]int),
		tournamentsLoaded: make(map[string]int),
	}
}

func archiveOpKey(op string, store string, result string) string {
	return op + "/" + store + "/" + result
}

func (m *Mock) IncArchiveOp(op string, store string, result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.archiveOps[archiveOpKey(op, store, result)]++
}

func (m *Mock) ObserveDocumentBytes(op string, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.documentBytes[op] = append(m.documentBytes[op], n)
}

func (m *Mock) IncTournamentsLoaded(tournamentType string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tournamentsLoaded[tournamentType]++
}

// ArchiveOps returns the number of times IncArchiveOp was called with the
// given labels.
func (m *Mock) ArchiveOps(op string, store string, result string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.archiveOps[archiveOpKey(op, store, result)]
}

// DocumentBytes returns the sizes observed for op in call order.
func (m *Mock) DocumentBytes(op string) []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int(nil), m.documentBytes[op]...)
}

// TournamentsLoaded returns the number of times IncTournamentsLoaded was
// called for tournamentType.
func (m *Mock) TournamentsLoaded(tournamentType string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tournamentsLoaded[tournamentType]
}
