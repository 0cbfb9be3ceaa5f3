package audio

import (
	"errors"
	"os"

	"github.com/go-audio/wav"
)

// wavDurationMs decodes a PCM WAV file fully and returns the signal length
// in milliseconds. An empty data chunk yields 0. The duration is computed
// from the decoded frames, not container metadata, so it is sample-exact.
func wavDurationMs(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return 0, errors.New("invalid WAV data")
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return 0, err
	}
	if buf.Format == nil || buf.Format.SampleRate <= 0 {
		return 0, errors.New("missing WAV format")
	}

	channels := buf.Format.NumChannels
	if channels <= 0 {
		channels = 1
	}
	frames := len(buf.Data) / channels

	return int(int64(frames) * 1000 / int64(buf.Format.SampleRate)), nil
}
