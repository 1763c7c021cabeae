package dialogue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrEmptyDialogue signals a run that produced no segments at all. It is a
// "nothing to synthesise" outcome, not a failure; callers decide how to
// message it.
var ErrEmptyDialogue = errors.New("empty dialogue")

// MaxPause bounds the silence a turn may request after its lines.
const MaxPause = 3 * time.Second

// MaxTurns bounds how many speakers a session may configure.
const MaxTurns = 20

// Engine is the synthesis engine grade. It affects which voices are
// available and the cost/latency of each request.
type Engine string

const (
	EngineNeural     Engine = "neural"
	EngineGenerative Engine = "generative"
)

// Engines lists the selectable engine grades in display order.
var Engines = []Engine{EngineGenerative, EngineNeural}

// SampleRate is the output sample rate in Hz.
type SampleRate int

const (
	SampleRate8000  SampleRate = 8000
	SampleRate16000 SampleRate = 16000
	SampleRate22050 SampleRate = 22050
	SampleRate48000 SampleRate = 48000
)

// SampleRatesFor lists the selectable output rates for a provider format,
// in display order. Polly only accepts 8000 and 16000 Hz for pcm output,
// so the pcm path offers a different set than the encoded containers.
func SampleRatesFor(f Format) []SampleRate {
	if f == FormatPCM {
		return []SampleRate{SampleRate8000, SampleRate16000}
	}
	return []SampleRate{SampleRate22050, SampleRate48000}
}

// Turn is one speaker's configured block of dialogue lines plus the pause
// that follows it.
type Turn struct {
	ID         uuid.UUID
	VoiceID    string
	RawText    string
	PauseAfter time.Duration
}

// Settings are the global knobs of one assembly run. They apply to every
// turn; voice choice is the only per-turn synthesis input.
type Settings struct {
	Engine       Engine
	SampleRate   SampleRate
	LanguageCode string
}

// Request describes one synthesis call to the provider.
type Request struct {
	Text       string
	VoiceID    string
	Engine     Engine
	SampleRate SampleRate
	Format     Format
}

// Format is the encoded-audio container requested from the provider.
type Format string

const (
	FormatMP3 Format = "mp3"
	FormatPCM Format = "pcm"
)

// Synthesizer is the boundary to the cloud text-to-speech provider.
type Synthesizer interface {
	Synthesize(ctx context.Context, req Request) ([]byte, error)
}

// SynthesisError reports a failed synthesis call with the offending voice,
// so the user can identify and fix the turn that caused it.
type SynthesisError struct {
	VoiceID string
	Err     error
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("synthesize with voice %q: %v", e.VoiceID, e.Err)
}

func (e *SynthesisError) Unwrap() error {
	return e.Err
}
