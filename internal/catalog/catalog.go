// Package catalog caches the provider's voice inventory for the process
// lifetime and answers language/engine filter queries against it.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"dialoguebuilder/internal/dialogue"
)

// ErrCatalogUnavailable wraps a failed voice inventory fetch. The
// application cannot proceed without a voice list, so callers treat it as
// fatal.
var ErrCatalogUnavailable = errors.New("voice catalog unavailable")

// Voice is one provider voice. Immutable once fetched.
type Voice struct {
	ID               string
	Name             string
	LanguageCode     string
	SupportedEngines []dialogue.Engine
}

// VoiceLister is the provider boundary for the one-time inventory fetch.
type VoiceLister interface {
	ListVoices(ctx context.Context) ([]Voice, error)
}

// Catalog holds the fetched voice set. Read-only after Load, safe for
// concurrent readers.
type Catalog struct {
	voices []Voice
}

// Load fetches the voice inventory once. Any failure is wrapped in
// ErrCatalogUnavailable.
func Load(ctx context.Context, logger *slog.Logger, lister VoiceLister) (*Catalog, error) {
	voices, err := lister.ListVoices(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	logger.Info("voice catalog loaded", slog.Int("voices", len(voices)))
	return &Catalog{voices: voices}, nil
}

// Filter returns the voices matching a language code and supporting an
// engine, sorted by name. Zero matches is a valid result; the caller
// decides how to message it.
func (c *Catalog) Filter(languageCode string, engine dialogue.Engine) []Voice {
	var out []Voice
	for _, v := range c.voices {
		if v.LanguageCode == languageCode && slices.Contains(v.SupportedEngines, engine) {
			out = append(out, v)
		}
	}
	slices.SortFunc(out, func(a, b Voice) int {
		return strings.Compare(a.Name, b.Name)
	})
	return out
}

// Languages returns the sorted distinct language codes across all voices.
func (c *Catalog) Languages() []string {
	var out []string
	for _, v := range c.voices {
		if !slices.Contains(out, v.LanguageCode) {
			out = append(out, v.LanguageCode)
		}
	}
	slices.Sort(out)
	return out
}

// VoiceIDs projects a filtered voice list to its identifiers, preserving
// order.
func VoiceIDs(voices []Voice) []string {
	ids := make([]string, 0, len(voices))
	for _, v := range voices {
		ids = append(ids, v.ID)
	}
	return ids
}
