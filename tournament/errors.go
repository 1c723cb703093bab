/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tournament

import "errors"

var (
	ErrUnknownType         = errors.New("unknown tournament type")
	ErrNilTournament       = errors.New("nil tournament")
	ErrNotObject           = errors.New("json document is not an object")
	ErrEmptyObject         = errors.New("empty json object")
	ErrTypeMismatch        = errors.New("tournament type mismatch")
	ErrTooManyTerminations = errors.New("too many termination counters")
	ErrInconsistentScore   = errors.New("inconsistent score counters")
)
