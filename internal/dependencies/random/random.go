package random

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	mrand "math/rand/v2"
)

// Random is the source of every draw the engine makes: shuffles, wheel
// parameters, hold and gap lengths, coin outcomes and toss nonces.
type Random interface {
	// Intn returns an int in [0, n); n <= 0 returns 0
	Intn(n int) int

	// Float64 returns a float in [0, 1)
	Float64() float64

	// String returns length characters drawn from alphabet
	String(length int, alphabet string) string
}

// Source adapts a math/rand/v2 generator to Random
type Source struct {
	rng *mrand.Rand
}

// New returns a Source backed by the operating system's CSPRNG
func New() *Source {
	return &Source{rng: mrand.New(cryptoSource{})}
}

// NewSeeded returns a deterministic ChaCha8 Source. The same seed replays
// the same draft, which is useful for demos and bug reports.
func NewSeeded(seed string) *Source {
	return &Source{rng: mrand.New(mrand.NewChaCha8(sha256.Sum256([]byte(seed))))}
}

func (s *Source) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return s.rng.IntN(n)
}

func (s *Source) Float64() float64 {
	return s.rng.Float64()
}

func (s *Source) String(length int, alphabet string) string {
	if length <= 0 || alphabet == "" {
		return ""
	}
	out := make([]byte, length)
	for i := range out {
		out[i] = alphabet[s.rng.IntN(len(alphabet))]
	}
	return string(out)
}

// cryptoSource is a math/rand/v2 Source reading crypto/rand
type cryptoSource struct{}

func (cryptoSource) Uint64() uint64 {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return binary.LittleEndian.Uint64(b[:])
}
