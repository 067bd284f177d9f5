package sound

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
)

const (
	defaultSampleRate = beep.SampleRate(44100)
	defaultVolume     = 0.5
)

// Service renders cues to WAV and caches the result
type Service struct {
	rate   beep.SampleRate
	volume float64

	mu    sync.Mutex
	cache map[Cue][]byte
}

// New creates a sound service at 44.1kHz
func New() *Service {
	return &Service{
		rate:   defaultSampleRate,
		volume: defaultVolume,
		cache:  make(map[Cue][]byte),
	}
}

// WAV returns the encoded cue
func (s *Service) WAV(cue Cue) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if data, ok := s.cache[cue]; ok {
		return data, nil
	}

	st, err := streamer(cue, s.rate, s.volume)
	if err != nil {
		return nil, err
	}

	buf := &seekBuffer{}
	format := beep.Format{SampleRate: s.rate, NumChannels: 2, Precision: 2}
	if err := wav.Encode(buf, st, format); err != nil {
		return nil, fmt.Errorf("encode %s: %w", cue, err)
	}

	s.cache[cue] = buf.data
	return buf.data, nil
}

// seekBuffer is an in-memory io.WriteSeeker; wav.Encode seeks back to patch the header sizes
type seekBuffer struct {
	data []byte
	pos  int
}

func (b *seekBuffer) Write(p []byte) (int, error) {
	end := b.pos + len(p)
	if end > len(b.data) {
		b.data = append(b.data, make([]byte, end-len(b.data))...)
	}
	copy(b.data[b.pos:end], p)
	b.pos = end
	return len(p), nil
}

func (b *seekBuffer) Seek(offset int64, whence int) (int64, error) {
	var base int64
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		base = int64(b.pos)
	case io.SeekEnd:
		base = int64(len(b.data))
	default:
		return 0, errors.New("seekBuffer: invalid whence")
	}
	next := base + offset
	if next < 0 {
		return 0, errors.New("seekBuffer: negative position")
	}
	b.pos = int(next)
	return next, nil
}
