// Package audio holds the segment model and the concatenation strategies
// that merge an ordered list of speech and silence segments into one
// playable artifact.
package audio

import "time"

// Segment is one unit of audio to be concatenated: either encoded speech
// bytes from the synthesis provider, or a silence of a given duration.
// Ordering among segments is significant and must be preserved.
type Segment struct {
	Speech  []byte
	Silence time.Duration
}

// Speech wraps provider audio bytes as a segment.
func Speech(data []byte) Segment {
	return Segment{Speech: data}
}

// Silence builds a pause segment of the given duration.
func Silence(d time.Duration) Segment {
	return Segment{Silence: d}
}

// IsSilence reports whether the segment is a pause rather than speech.
func (s Segment) IsSilence() bool {
	return s.Speech == nil
}

// Artifact is the final concatenated audio of one assembly run.
type Artifact struct {
	Data        []byte
	ContentType string
	FileName    string
}

// Concatenator merges ordered segments into a single playable artifact.
// sampleRate is the rate the speech segments were synthesized at.
// Implementations must not re-order segments.
type Concatenator interface {
	Concatenate(segments []Segment, sampleRate int) (Artifact, error)
}
