package random

import (
	crand "crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
)

// ErrUnavailable marks a failure to obtain random bytes. Callers never fall
// back to a non-random choice when they see it.
var ErrUnavailable = errors.New("random source unavailable")

// Source yields random bytes. crypto/rand.Reader is the default.
type Source = io.Reader

// Default is the process-wide cryptographic source.
var Default Source = crand.Reader

const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// limit is the largest multiple of len(alphabet) that fits in a byte. Bytes
// at or above it are discarded so every character is equally likely.
const limit = 256 - 256%len(alphabet)

// AlphaNumeric returns n characters drawn uniformly from lowercase letters
// and digits.
func AlphaNumeric(src Source, n int) (string, error) {
	if src == nil {
		src = Default
	}

	out := make([]byte, 0, n)
	buf := make([]byte, n)
	for len(out) < n {
		chunk := buf[:n-len(out)]
		if _, err := io.ReadFull(src, chunk); err != nil {
			return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		for _, b := range chunk {
			if int(b) < limit {
				out = append(out, alphabet[int(b)%len(alphabet)])
			}
		}
	}
	return string(out), nil
}

// Index returns a uniformly distributed integer in [0, n).
func Index(src Source, n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("random index over empty range %d", n)
	}
	if src == nil {
		src = Default
	}

	v, err := crand.Int(src, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return int(v.Int64()), nil
}
