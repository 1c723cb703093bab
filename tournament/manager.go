/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tournament

// GameManager supplies game execution services to a tournament. Tournaments
// hold a reference to it but never own it.
type GameManager interface {
	// Concurrency is the number of games the manager runs at once.
	Concurrency() int
}

// LocalManager runs games on the local machine.
type LocalManager struct {
	MaxConcurrency int
}

var _ GameManager = (*LocalManager)(nil)

func (m *LocalManager) Concurrency() int {
	if m.MaxConcurrency < 1 {
		return 1
	}

	return m.MaxConcurrency
}
