// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/texview

package texview

import "github.com/cockroachdb/errors"

const (
	maxInt32  = int(^uint32(0) >> 1)
	maxUint32 = uint64(^uint32(0))
)

// U32FromInt converts an int to a uint32.
func U32FromInt(n int) (uint32, error) {
	if n < 0 || uint64(n) > maxUint32 {
		return 0, errors.Wrapf(ErrSizeOverflow, "%d", n)
	}

	// #nosec G115 -- bounds checked above.
	return uint32(n), nil
}

// I32FromInt converts an int to an int32.
func I32FromInt(n int) (int32, error) {
	if n < 0 || n > maxInt32 {
		return 0, errors.Wrapf(ErrSizeOverflow, "%d", n)
	}

	return int32(n), nil
}

// mulChecked multiplies non-negative operands and reports overflow.
func mulChecked(a, b int) (int, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	r := a * b
	if r/b != a || r < 0 {
		return 0, errors.Wrapf(ErrSizeOverflow, "%d * %d", a, b)
	}

	return r, nil
}
