package sonictrace

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// workspace owns the two scratch files of one in-flight request: the
// downloaded source and the transcoded sample. Names are keyed on a random
// request id so concurrent requests never collide. Cleanup is deferred for
// the whole pipeline body and removes both files on every exit path.
type workspace struct {
	id         string
	sourcePath string
	samplePath string
}

func newWorkspace(tempDir string) (*workspace, error) {
	if err := os.MkdirAll(tempDir, 0o755); err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}

	id := uuid.NewString()
	return &workspace{
		id:         id,
		sourcePath: filepath.Join(tempDir, fmt.Sprintf("source_%s.audio", id)),
		samplePath: filepath.Join(tempDir, fmt.Sprintf("sample_%s.mp3", id)),
	}, nil
}

func (w *workspace) Source() string { return w.sourcePath }
func (w *workspace) Sample() string { return w.samplePath }

// Cleanup removes both scratch files unconditionally. Missing files are
// not an error; a failed pipeline may not have produced them all.
func (w *workspace) Cleanup() {
	os.Remove(w.sourcePath)
	os.Remove(w.samplePath)
}
