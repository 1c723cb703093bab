/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ParseDateOrZero parses a date in any of the formats people tend to type
// into event files ("2026-03-05", "March 5, 2026", "03/05/2026", ...). An
// empty input or "null" yields the zero time. Dates without a zone are UTC.
func ParseDateOrZero(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "null" {
		return time.Time{}, nil
	}

	return dateparse.ParseIn(s, time.UTC)
}
