// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package overlay

import "strconv"

// MaxDisplayedCount is the largest count shown literally.
const MaxDisplayedCount = 999

// FormatCount returns the badge label for a cluster of n icons.
func FormatCount(n int) string {
	if n > MaxDisplayedCount {
		return strconv.Itoa(MaxDisplayedCount) + "+"
	}
	return strconv.Itoa(n)
}
