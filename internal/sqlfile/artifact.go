package sqlfile

import (
	"errors"
	"fmt"
	"os"
)

// ErrArtifactWrite wraps every failure to persist the output file.
var ErrArtifactWrite = errors.New("artifact write failed")

// WriteArtifact writes content to path, truncating any existing file. There
// is no retry and a partially written file is left in place.
func WriteArtifact(path, content string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrArtifactWrite, err)
	}
	if _, err := f.WriteString(content); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w: %w", ErrArtifactWrite, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrArtifactWrite, err)
	}
	return nil
}
