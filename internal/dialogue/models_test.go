package dialogue

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSampleRatesForFormat(t *testing.T) {
	// Polly's pcm output only accepts 8000 and 16000 Hz; the encoded
	// containers offer the higher rates.
	require.Equal(t, []SampleRate{SampleRate8000, SampleRate16000}, SampleRatesFor(FormatPCM))
	require.Equal(t, []SampleRate{SampleRate22050, SampleRate48000}, SampleRatesFor(FormatMP3))
}

func TestSynthesisErrorNamesVoiceAndUnwraps(t *testing.T) {
	cause := errors.New("quota exceeded")
	err := &SynthesisError{VoiceID: "Joanna", Err: cause}
	require.Contains(t, err.Error(), "Joanna")
	require.ErrorIs(t, err, cause)
}
