package audio

import (
	"bytes"
	"encoding/binary"
	"testing"
	"time"

	"github.com/go-audio/wav"
	"github.com/stretchr/testify/require"
)

func pcm(samples ...int16) []byte {
	out := make([]byte, 2*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[2*i:], uint16(s))
	}
	return out
}

func decode(t *testing.T, data []byte) ([]int, int) {
	t.Helper()
	dec := wav.NewDecoder(bytes.NewReader(data))
	buf, err := dec.FullPCMBuffer()
	require.NoError(t, err)
	return buf.Data, buf.Format.SampleRate
}

func TestWAVConcatenateOrderAndSilence(t *testing.T) {
	c := NewWAVConcatenator()
	segments := []Segment{
		Speech(pcm(100, 200, 300)),
		Silence(100 * time.Millisecond),
		Speech(pcm(-100, -200)),
	}

	art, err := c.Concatenate(segments, 22050)
	require.NoError(t, err)
	require.Equal(t, "audio/wav", art.ContentType)
	require.Equal(t, "dialogue.wav", art.FileName)

	samples, rate := decode(t, art.Data)
	require.Equal(t, 22050, rate)

	// 100ms at 22050Hz is 2205 zero samples between the speech blocks.
	require.Len(t, samples, 3+2205+2)
	require.Equal(t, []int{100, 200, 300}, samples[:3])
	for _, s := range samples[3 : 3+2205] {
		require.Zero(t, s)
	}
	require.Equal(t, []int{-100, -200}, samples[3+2205:])
}

func TestWAVConcatenateSilenceScalesWithRate(t *testing.T) {
	c := NewWAVConcatenator()
	art, err := c.Concatenate([]Segment{Silence(500 * time.Millisecond)}, 48000)
	require.NoError(t, err)

	samples, rate := decode(t, art.Data)
	require.Equal(t, 48000, rate)
	require.Len(t, samples, 24000)
}

func TestWAVConcatenateRejectsOddPCM(t *testing.T) {
	c := NewWAVConcatenator()
	_, err := c.Concatenate([]Segment{Speech([]byte{1, 2, 3})}, 22050)
	require.Error(t, err)
	require.Contains(t, err.Error(), "odd pcm byte count")
}

func TestWAVConcatenateEmptySegments(t *testing.T) {
	c := NewWAVConcatenator()
	art, err := c.Concatenate(nil, 22050)
	require.NoError(t, err)

	samples, _ := decode(t, art.Data)
	require.Empty(t, samples)
}
