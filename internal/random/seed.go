// Package random generates high-entropy seeds for the pseudo-random
// jitter used by fallback valuations.
//
// Sub-scores must vary between paintings, so the valuation service
// seeds its math/rand source from crypto/rand instead of the clock.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
)

// NewSeed draws a random int64 seed from crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}
