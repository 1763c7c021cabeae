package dialogue

import (
	"context"
	"fmt"
	"log/slog"

	"dialoguebuilder/internal/audio"
)

// Assembler turns an ordered list of speaker turns into one concatenated
// audio artifact. Each Assemble call is a fresh, independent run over the
// snapshot it is given; the assembler keeps no state between runs.
type Assembler struct {
	logger *slog.Logger
	synth  Synthesizer
	concat audio.Concatenator
	format Format
}

// NewAssembler constructs an Assembler. The format must match what the
// concatenator expects from the provider.
func NewAssembler(logger *slog.Logger, synth Synthesizer, concat audio.Concatenator, format Format) *Assembler {
	return &Assembler{
		logger: logger,
		synth:  synth,
		concat: concat,
		format: format,
	}
}

// Format reports the provider output format this assembler requests.
func (a *Assembler) Format() Format {
	return a.format
}

// Assemble synthesizes every non-empty line of every turn in declared
// order, appends one silence segment after a turn when its pause is set,
// and merges the segments into a single artifact. The first synthesis
// failure aborts the whole run: no further provider calls are made and no
// artifact is produced. A run that yields no segments at all returns
// ErrEmptyDialogue.
func (a *Assembler) Assemble(ctx context.Context, turns []Turn, settings Settings) (audio.Artifact, error) {
	a.logger.Info("assembling dialogue",
		slog.Int("turns", len(turns)),
		slog.String("engine", string(settings.Engine)),
		slog.Int("sample_rate", int(settings.SampleRate)),
	)

	var segments []audio.Segment
	for i, turn := range turns {
		for utterance := range Utterances(turn.RawText) {
			if err := ctx.Err(); err != nil {
				return audio.Artifact{}, fmt.Errorf("assembly cancelled: %w", err)
			}

			data, err := a.synth.Synthesize(ctx, Request{
				Text:       utterance,
				VoiceID:    turn.VoiceID,
				Engine:     settings.Engine,
				SampleRate: settings.SampleRate,
				Format:     a.format,
			})
			if err != nil {
				a.logger.Error("synthesis failed, aborting run",
					slog.Int("turn", i),
					slog.String("voice_id", turn.VoiceID),
					slog.String("error", err.Error()),
				)
				return audio.Artifact{}, err
			}

			a.logger.Debug("synthesized utterance",
				slog.Int("turn", i),
				slog.String("voice_id", turn.VoiceID),
				slog.Int("text_length", len(utterance)),
				slog.Int("audio_bytes", len(data)),
			)
			segments = append(segments, audio.Speech(data))
		}

		// A turn with only blank lines still contributes its pause.
		if turn.PauseAfter > 0 {
			segments = append(segments, audio.Silence(turn.PauseAfter))
		}
	}

	if len(segments) == 0 {
		a.logger.Info("nothing to synthesise")
		return audio.Artifact{}, ErrEmptyDialogue
	}

	artifact, err := a.concat.Concatenate(segments, int(settings.SampleRate))
	if err != nil {
		return audio.Artifact{}, fmt.Errorf("concatenate %d segments: %w", len(segments), err)
	}

	a.logger.Info("dialogue assembled",
		slog.Int("segments", len(segments)),
		slog.Int("artifact_bytes", len(artifact.Data)),
	)
	return artifact, nil
}
