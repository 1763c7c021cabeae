package tts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"dialoguebuilder/internal/dialogue"
)

func TestStubSynthesizeDeterministic(t *testing.T) {
	stub := NewStubClient()
	req := dialogue.Request{Text: "Hello!", VoiceID: "Joanna"}

	first, err := stub.Synthesize(context.Background(), req)
	require.NoError(t, err)
	second, err := stub.Synthesize(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, first, second)

	// Different voice, different bytes.
	other, err := stub.Synthesize(context.Background(), dialogue.Request{Text: "Hello!", VoiceID: "Matthew"})
	require.NoError(t, err)
	require.NotEqual(t, first, other)
}

func TestStubSynthesizeEvenByteCount(t *testing.T) {
	stub := NewStubClient()
	for _, text := range []string{"a", "Hello!", "¡Hola señor!"} {
		data, err := stub.Synthesize(context.Background(), dialogue.Request{Text: text, VoiceID: "Joanna"})
		require.NoError(t, err)
		require.NotEmpty(t, data)
		require.Zero(t, len(data)%2, "pcm payload must be even-length")
	}
}

func TestStubListVoices(t *testing.T) {
	stub := NewStubClient()
	voices, err := stub.ListVoices(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, voices)

	languages := map[string]bool{}
	for _, v := range voices {
		require.NotEmpty(t, v.ID)
		require.NotEmpty(t, v.SupportedEngines)
		languages[v.LanguageCode] = true
	}
	require.True(t, languages["en-US"])
	require.GreaterOrEqual(t, len(languages), 2)
}
