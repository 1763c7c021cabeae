package dialogue

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"dialoguebuilder/internal/audio"
)

// Default lines seeded into a fresh session so the form is never empty.
var seedLines = []string{
	"Hello!\nHow are you?",
	"Great, thanks!\nReady for the meeting?",
}

// Session is the mutable editing state of one user: global settings, the
// ordered speaker turns, and the artifact of the most recent run. It is
// owned by a single browser session; the embedded mutex serializes the
// handlers of concurrent requests carrying the same session cookie.
type Session struct {
	sync.Mutex

	ID       uuid.UUID
	Settings Settings
	Turns    []Turn
	Artifact *audio.Artifact
}

// NewSession builds a session with the given defaults and two seeded
// speakers, alternating over the available voices.
func NewSession(settings Settings, voiceIDs []string) *Session {
	s := &Session{
		ID:       uuid.New(),
		Settings: settings,
	}
	for i, lines := range seedLines {
		if len(voiceIDs) == 0 {
			break
		}
		s.Turns = append(s.Turns, Turn{
			ID:      uuid.New(),
			VoiceID: voiceIDs[i%len(voiceIDs)],
			RawText: lines,
		})
	}
	return s
}

// AddTurn appends a new empty speaker, cycling its voice over the
// available voices the way the seeded speakers do.
func (s *Session) AddTurn(voiceIDs []string) error {
	if len(s.Turns) >= MaxTurns {
		return fmt.Errorf("at most %d speakers allowed", MaxTurns)
	}
	if len(voiceIDs) == 0 {
		return fmt.Errorf("no voices available")
	}
	s.Turns = append(s.Turns, Turn{
		ID:      uuid.New(),
		VoiceID: voiceIDs[len(s.Turns)%len(voiceIDs)],
	})
	return nil
}

// RemoveTurn deletes the speaker at index; out-of-range indexes are a
// no-op.
func (s *Session) RemoveTurn(index int) {
	if index < 0 || index >= len(s.Turns) {
		return
	}
	s.Turns = slices.Delete(s.Turns, index, index+1)
}

// EnsureVoices silently resets any turn whose voice is not in voiceIDs to
// the first available voice. Called after the language or engine filter
// changes and invalidates previously chosen voices.
func (s *Session) EnsureVoices(voiceIDs []string) {
	if len(voiceIDs) == 0 {
		return
	}
	for i := range s.Turns {
		if !slices.Contains(voiceIDs, s.Turns[i].VoiceID) {
			s.Turns[i].VoiceID = voiceIDs[0]
		}
	}
}

// ClampPause bounds a requested pause to [0, MaxPause].
func ClampPause(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	if d > MaxPause {
		return MaxPause
	}
	return d
}

// SnapshotTurns copies the turn list so an assembly run is isolated from
// later edits.
func (s *Session) SnapshotTurns() []Turn {
	return slices.Clone(s.Turns)
}
