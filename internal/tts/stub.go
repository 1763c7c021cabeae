package tts

import (
	"context"
	"hash/fnv"

	"dialoguebuilder/internal/catalog"
	"dialoguebuilder/internal/dialogue"
)

// StubClient simulates the synthesis provider for development and tests.
// Output bytes are deterministic in the request, so repeated runs over the
// same dialogue produce identical artifacts.
type StubClient struct{}

// NewStubClient constructs StubClient.
func NewStubClient() *StubClient {
	return &StubClient{}
}

// Synthesize returns fake audio derived from text and voice. The payload
// is valid 16-bit PCM (even byte count) so it feeds either concatenation
// strategy.
func (s *StubClient) Synthesize(ctx context.Context, req dialogue.Request) ([]byte, error) {
	h := fnv.New32a()
	h.Write([]byte(req.VoiceID))
	h.Write([]byte(req.Text))
	seed := h.Sum32()

	// Two bytes per input byte keeps the length even and roughly
	// proportional to the spoken text.
	data := make([]byte, 2*len(req.Text))
	for i := range data {
		data[i] = byte(seed >> (uint(i%4) * 8))
	}
	return data, nil
}

// ListVoices returns a small fixed inventory spanning two languages and
// both engine grades.
func (s *StubClient) ListVoices(ctx context.Context) ([]catalog.Voice, error) {
	both := []dialogue.Engine{dialogue.EngineNeural, dialogue.EngineGenerative}
	neural := []dialogue.Engine{dialogue.EngineNeural}
	return []catalog.Voice{
		{ID: "Joanna", Name: "Joanna", LanguageCode: "en-US", SupportedEngines: both},
		{ID: "Matthew", Name: "Matthew", LanguageCode: "en-US", SupportedEngines: both},
		{ID: "Ruth", Name: "Ruth", LanguageCode: "en-US", SupportedEngines: both},
		{ID: "Lucia", Name: "Lucia", LanguageCode: "es-ES", SupportedEngines: neural},
		{ID: "Sergio", Name: "Sergio", LanguageCode: "es-ES", SupportedEngines: neural},
	}, nil
}
