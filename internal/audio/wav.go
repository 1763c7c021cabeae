package audio

import (
	"encoding/binary"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	numChannels = 1
	bitDepth    = 16
)

// WAVConcatenator merges segments synthesized as raw PCM (16-bit signed
// little-endian, mono) into a single WAV container. Silence becomes zero
// samples sized from the run's sample rate, so pause durations stay exact
// regardless of rate.
type WAVConcatenator struct{}

// NewWAVConcatenator builds a concatenator for PCM speech segments.
func NewWAVConcatenator() *WAVConcatenator {
	return &WAVConcatenator{}
}

// Concatenate appends all segments in order and wraps them once in a WAV
// container at the given sample rate.
func (c *WAVConcatenator) Concatenate(segments []Segment, sampleRate int) (Artifact, error) {
	var samples []int
	for i, seg := range segments {
		if seg.IsSilence() {
			n := int(seg.Silence.Milliseconds()) * sampleRate / 1000
			samples = append(samples, make([]int, n)...)
			continue
		}
		if len(seg.Speech)%2 != 0 {
			return Artifact{}, fmt.Errorf("segment %d: odd pcm byte count %d", i, len(seg.Speech))
		}
		for off := 0; off < len(seg.Speech); off += 2 {
			samples = append(samples, int(int16(binary.LittleEndian.Uint16(seg.Speech[off:]))))
		}
	}

	buf := &writeSeekBuffer{}
	enc := wav.NewEncoder(buf, sampleRate, bitDepth, numChannels, 1)
	err := enc.Write(&goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: numChannels, SampleRate: sampleRate},
		Data:           samples,
		SourceBitDepth: bitDepth,
	})
	if err != nil {
		return Artifact{}, fmt.Errorf("encode wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return Artifact{}, fmt.Errorf("close wav encoder: %w", err)
	}

	return Artifact{
		Data:        buf.bytes(),
		ContentType: "audio/wav",
		FileName:    "dialogue.wav",
	}, nil
}

// writeSeekBuffer is an in-memory io.WriteSeeker. The wav encoder seeks
// back to patch chunk sizes on Close, which bytes.Buffer cannot do.
type writeSeekBuffer struct {
	data []byte
	pos  int
}

func (b *writeSeekBuffer) Write(p []byte) (int, error) {
	if need := b.pos + len(p); need > len(b.data) {
		if need > cap(b.data) {
			grown := make([]byte, need, max(need, 2*cap(b.data)))
			copy(grown, b.data)
			b.data = grown
		} else {
			b.data = b.data[:need]
		}
	}
	copy(b.data[b.pos:], p)
	b.pos += len(p)
	return len(p), nil
}

func (b *writeSeekBuffer) Seek(offset int64, whence int) (int64, error) {
	var pos int64
	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = int64(b.pos) + offset
	case io.SeekEnd:
		pos = int64(len(b.data)) + offset
	default:
		return 0, fmt.Errorf("invalid whence %d", whence)
	}
	if pos < 0 {
		return 0, fmt.Errorf("negative seek position %d", pos)
	}
	b.pos = int(pos)
	return pos, nil
}

func (b *writeSeekBuffer) bytes() []byte {
	return b.data
}
