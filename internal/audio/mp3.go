package audio

// MP3Appender merges MP3 segments by raw byte append. Players resync on
// frame boundaries, so same-format same-rate segments play back in order
// without re-encoding. Silence is zero padding sized from the configured
// bitrate; the bitrate is a parameter of the strategy, never assumed.
type MP3Appender struct {
	bitrateKbps int
}

// NewMP3Appender builds an appender for MP3 segments encoded at the given
// bitrate in kbit/s.
func NewMP3Appender(bitrateKbps int) *MP3Appender {
	return &MP3Appender{bitrateKbps: bitrateKbps}
}

// Concatenate appends all segments in order into one MP3 stream. The
// sample rate is already baked into the encoded frames and is ignored.
func (c *MP3Appender) Concatenate(segments []Segment, sampleRate int) (Artifact, error) {
	var out []byte
	for _, seg := range segments {
		if seg.IsSilence() {
			out = append(out, make([]byte, c.silenceBytes(seg))...)
			continue
		}
		out = append(out, seg.Speech...)
	}
	return Artifact{
		Data:        out,
		ContentType: "audio/mpeg",
		FileName:    "dialogue.mp3",
	}, nil
}

// silenceBytes converts a pause duration to a byte count at the configured
// bitrate: kbit/s * 125 = bytes per second.
func (c *MP3Appender) silenceBytes(seg Segment) int {
	return c.bitrateKbps * 125 * int(seg.Silence.Milliseconds()) / 1000
}
