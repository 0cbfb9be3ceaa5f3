package audio

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"time"
)

// ErrTranscode means the source could not be decoded or re-encoded.
// Corrupt or unsupported containers surface here.
var ErrTranscode = errors.New("audio transcode failed")

// Fixed output profile of the identification sample. The fingerprint
// service only needs speech-band content, so the sample is mono, 8 kHz,
// 32 kbps constant-bitrate MP3, full duration.
const (
	SampleRate = 8000
	BitRate    = "32k"
)

// Transcoder produces the upload sample with ffmpeg and reports the
// source's total decoded duration.
type Transcoder struct{}

// Transcode decodes sourcePath fully, downmixes to mono at 8 kHz, and
// writes a 32 kbps MP3 to samplePath. The returned duration is the decoded
// signal length in milliseconds, 0 for an empty signal. The source file is
// not modified.
func (t Transcoder) Transcode(ctx context.Context, sourcePath, samplePath string) (int, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 2*time.Minute)
		defer cancel()
	}

	// Decode through an intermediate PCM WAV so the exact duration can be
	// read back from the decoded signal rather than container metadata.
	wavPath := samplePath + ".tmp.wav"
	defer os.Remove(wavPath)

	decode := exec.CommandContext(
		ctx,
		"ffmpeg",
		"-y",
		"-v", "quiet",
		"-i", sourcePath,
		"-ac", "1",
		"-ar", strconv.Itoa(SampleRate),
		"-c:a", "pcm_s16le",
		wavPath,
	)
	if out, err := decode.CombinedOutput(); err != nil {
		if ctx.Err() != nil {
			return 0, fmt.Errorf("%w: %v", ErrTranscode, ctx.Err())
		}
		return 0, fmt.Errorf("%w: ffmpeg decode: %v (%s)", ErrTranscode, err, out)
	}

	totalDurationMs, err := wavDurationMs(wavPath)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrTranscode, err)
	}

	encode := exec.CommandContext(
		ctx,
		"ffmpeg",
		"-y",
		"-v", "quiet",
		"-i", wavPath,
		"-ac", "1",
		"-ar", strconv.Itoa(SampleRate),
		"-b:a", BitRate,
		"-f", "mp3",
		samplePath,
	)
	if out, err := encode.CombinedOutput(); err != nil {
		if ctx.Err() != nil {
			return 0, fmt.Errorf("%w: %v", ErrTranscode, ctx.Err())
		}
		return 0, fmt.Errorf("%w: ffmpeg encode: %v (%s)", ErrTranscode, err, out)
	}

	return totalDurationMs, nil
}
