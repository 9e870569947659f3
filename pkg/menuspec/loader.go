package menuspec

import (
	"fmt"

	"github.com/spf13/afero"
)

// Loader reads menu documents from a filesystem.
type Loader struct {
	Fs afero.Fs
}

// NewLoader returns a Loader backed by the OS filesystem.
func NewLoader() *Loader {
	return &Loader{Fs: afero.NewOsFs()}
}

// ReadFile returns the raw document at path.
func (l *Loader) ReadFile(path string) ([]byte, error) {
	b, err := afero.ReadFile(l.fs(), path)
	if err != nil {
		return nil, fmt.Errorf("reading menu %s: %w", path, err)
	}
	return b, nil
}

// Load reads and parses the document at path.
func (l *Loader) Load(path string) (*Document, error) {
	b, err := l.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

func (l *Loader) fs() afero.Fs {
	if l.Fs == nil {
		return afero.NewOsFs()
	}
	return l.Fs
}
