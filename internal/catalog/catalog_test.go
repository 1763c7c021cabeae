package catalog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"dialoguebuilder/internal/dialogue"
)

type fakeLister struct {
	voices []Voice
	err    error
	calls  int
}

func (f *fakeLister) ListVoices(ctx context.Context) ([]Voice, error) {
	f.calls++
	return f.voices, f.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testVoices() []Voice {
	both := []dialogue.Engine{dialogue.EngineNeural, dialogue.EngineGenerative}
	neural := []dialogue.Engine{dialogue.EngineNeural}
	return []Voice{
		{ID: "Matthew", Name: "Matthew", LanguageCode: "en-US", SupportedEngines: both},
		{ID: "Joanna", Name: "Joanna", LanguageCode: "en-US", SupportedEngines: both},
		{ID: "Brian", Name: "Brian", LanguageCode: "en-GB", SupportedEngines: neural},
		{ID: "Lucia", Name: "Lucia", LanguageCode: "es-ES", SupportedEngines: neural},
	}
}

func TestLoadFetchesOnce(t *testing.T) {
	lister := &fakeLister{voices: testVoices()}
	cat, err := Load(context.Background(), testLogger(), lister)
	require.NoError(t, err)
	require.Equal(t, 1, lister.calls)

	// Queries hit the cache, never the provider.
	cat.Filter("en-US", dialogue.EngineNeural)
	cat.Languages()
	require.Equal(t, 1, lister.calls)
}

func TestLoadUnavailable(t *testing.T) {
	lister := &fakeLister{err: errors.New("bad credentials")}
	_, err := Load(context.Background(), testLogger(), lister)
	require.ErrorIs(t, err, ErrCatalogUnavailable)
	require.Contains(t, err.Error(), "bad credentials")
}

func TestFilterByLanguageAndEngine(t *testing.T) {
	cat, err := Load(context.Background(), testLogger(), &fakeLister{voices: testVoices()})
	require.NoError(t, err)

	got := cat.Filter("en-US", dialogue.EngineGenerative)
	require.Len(t, got, 2)
	// Sorted by name.
	require.Equal(t, "Joanna", got[0].Name)
	require.Equal(t, "Matthew", got[1].Name)

	require.Len(t, cat.Filter("en-GB", dialogue.EngineNeural), 1)
	// Zero matches is a valid, non-error result.
	require.Empty(t, cat.Filter("en-GB", dialogue.EngineGenerative))
	require.Empty(t, cat.Filter("fr-FR", dialogue.EngineNeural))
}

func TestLanguagesSortedDistinct(t *testing.T) {
	cat, err := Load(context.Background(), testLogger(), &fakeLister{voices: testVoices()})
	require.NoError(t, err)
	require.Equal(t, []string{"en-GB", "en-US", "es-ES"}, cat.Languages())
}

func TestVoiceIDs(t *testing.T) {
	ids := VoiceIDs([]Voice{{ID: "Joanna"}, {ID: "Matthew"}})
	require.Equal(t, []string{"Joanna", "Matthew"}, ids)
	require.Empty(t, VoiceIDs(nil))
}
