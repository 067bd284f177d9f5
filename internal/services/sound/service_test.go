package sound

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/teamdraft/internal/model"
)

func TestParseCue(t *testing.T) {
	for _, c := range Cues {
		got, err := ParseCue(string(c))
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}

	_, err := ParseCue("airhorn")
	assert.ErrorIs(t, err, model.ErrUnknownCue)
}

func TestWAV_EncodesEveryCue(t *testing.T) {
	s := New()

	for _, c := range Cues {
		t.Run(string(c), func(t *testing.T) {
			data, err := s.WAV(c)
			require.NoError(t, err)
			require.Greater(t, len(data), 44)

			assert.Equal(t, "RIFF", string(data[0:4]))
			assert.Equal(t, "WAVE", string(data[8:12]))
			// data chunk size is patched once the samples are written
			assert.Equal(t, uint32(len(data)-44), binary.LittleEndian.Uint32(data[40:44]))
		})
	}
}

func TestWAV_DurationMatchesScore(t *testing.T) {
	s := New()

	data, err := s.WAV(CueTick)
	require.NoError(t, err)

	// 25ms of 16-bit stereo at 44.1kHz after a 44 byte header
	samples := defaultSampleRate.N(scores[CueTick][0].duration)
	assert.Equal(t, 44+samples*4, len(data))
}

func TestWAV_IsCached(t *testing.T) {
	s := New()

	first, err := s.WAV(CuePick)
	require.NoError(t, err)
	second, err := s.WAV(CuePick)
	require.NoError(t, err)

	assert.Same(t, &first[0], &second[0])
}

func TestWAV_UnknownCue(t *testing.T) {
	_, err := New().WAV("nope")
	assert.ErrorIs(t, err, model.ErrUnknownCue)
}

func TestSeekBuffer(t *testing.T) {
	b := &seekBuffer{}
	_, _ = b.Write([]byte("hello world"))

	_, err := b.Seek(0, io.SeekStart)
	require.NoError(t, err)
	_, _ = b.Write([]byte("J"))

	pos, err := b.Seek(-5, io.SeekEnd)
	require.NoError(t, err)
	assert.Equal(t, int64(6), pos)

	_, err = b.Seek(-100, io.SeekCurrent)
	assert.Error(t, err)
	assert.True(t, bytes.Equal([]byte("Jello world"), b.data))
}
