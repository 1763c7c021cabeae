// Package tts implements the synthesis provider boundary: an Amazon Polly
// client for production and a deterministic stub for development and tests.
package tts

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/polly"
	"github.com/aws/aws-sdk-go-v2/service/polly/types"

	"dialoguebuilder/internal/catalog"
	"dialoguebuilder/internal/dialogue"
)

// pollyAPI is the slice of the Polly SDK client we use, split out so tests
// can fake the provider.
type pollyAPI interface {
	SynthesizeSpeech(ctx context.Context, params *polly.SynthesizeSpeechInput, optFns ...func(*polly.Options)) (*polly.SynthesizeSpeechOutput, error)
	DescribeVoices(ctx context.Context, params *polly.DescribeVoicesInput, optFns ...func(*polly.Options)) (*polly.DescribeVoicesOutput, error)
}

// PollyClient synthesizes speech and lists voices via Amazon Polly.
type PollyClient struct {
	logger *slog.Logger
	api    pollyAPI
}

// NewPollyClient creates a Polly client from an AWS config.
func NewPollyClient(logger *slog.Logger, cfg aws.Config) *PollyClient {
	return &PollyClient{
		logger: logger,
		api:    polly.NewFromConfig(cfg),
	}
}

// Synthesize converts one utterance to encoded audio. Every provider
// failure is mapped to a *dialogue.SynthesisError naming the voice.
func (c *PollyClient) Synthesize(ctx context.Context, req dialogue.Request) ([]byte, error) {
	// Polly rejects pcm output at rates other than 8000 and 16000 Hz;
	// fail before the network call so the error names the voice.
	if req.Format == dialogue.FormatPCM && req.SampleRate != dialogue.SampleRate8000 && req.SampleRate != dialogue.SampleRate16000 {
		return nil, &dialogue.SynthesisError{
			VoiceID: req.VoiceID,
			Err:     fmt.Errorf("pcm output supports 8000 or 16000 Hz, got %d", req.SampleRate),
		}
	}

	out, err := c.api.SynthesizeSpeech(ctx, &polly.SynthesizeSpeechInput{
		Text:         aws.String(req.Text),
		VoiceId:      types.VoiceId(req.VoiceID),
		Engine:       types.Engine(req.Engine),
		OutputFormat: outputFormat(req.Format),
		SampleRate:   aws.String(strconv.Itoa(int(req.SampleRate))),
	})
	if err != nil {
		return nil, &dialogue.SynthesisError{VoiceID: req.VoiceID, Err: err}
	}
	defer out.AudioStream.Close()

	data, err := io.ReadAll(out.AudioStream)
	if err != nil {
		return nil, &dialogue.SynthesisError{VoiceID: req.VoiceID, Err: fmt.Errorf("read audio stream: %w", err)}
	}

	c.logger.Debug("polly synthesis succeeded",
		slog.String("voice_id", req.VoiceID),
		slog.Int("text_length", len(req.Text)),
		slog.Int("audio_bytes", len(data)),
	)
	return data, nil
}

// ListVoices fetches the full voice inventory, following pagination.
func (c *PollyClient) ListVoices(ctx context.Context) ([]catalog.Voice, error) {
	var (
		voices    []catalog.Voice
		nextToken *string
	)
	for {
		out, err := c.api.DescribeVoices(ctx, &polly.DescribeVoicesInput{NextToken: nextToken})
		if err != nil {
			return nil, fmt.Errorf("describe voices: %w", err)
		}
		for _, v := range out.Voices {
			voices = append(voices, catalog.Voice{
				ID:               string(v.Id),
				Name:             aws.ToString(v.Name),
				LanguageCode:     string(v.LanguageCode),
				SupportedEngines: engines(v.SupportedEngines),
			})
		}
		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}

	c.logger.Debug("polly voices listed", slog.Int("voices", len(voices)))
	return voices, nil
}

func outputFormat(f dialogue.Format) types.OutputFormat {
	if f == dialogue.FormatPCM {
		return types.OutputFormatPcm
	}
	return types.OutputFormatMp3
}

func engines(in []types.Engine) []dialogue.Engine {
	out := make([]dialogue.Engine, 0, len(in))
	for _, e := range in {
		out = append(out, dialogue.Engine(e))
	}
	return out
}
