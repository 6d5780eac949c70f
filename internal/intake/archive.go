package intake

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

const archiveFilePerm = 0o640

// Archive keeps a copy of every uploaded document.
type Archive struct {
	fs  afero.Fs
	dir string
}

// NewArchive stores uploads under dir on fs.
func NewArchive(fs afero.Fs, dir string) *Archive {
	return &Archive{fs: fs, dir: dir}
}

// Save writes data under a unique name derived from the original file name
// and returns the path written.
func (a *Archive) Save(name string, data []byte) (string, error) {
	if err := a.fs.MkdirAll(a.dir, 0o750); err != nil {
		return "", fmt.Errorf("cannot create upload directory %s: %w", a.dir, err)
	}
	path := filepath.Join(a.dir, uuid.NewString()+"-"+safeName(name))
	if err := afero.WriteFile(a.fs, path, data, archiveFilePerm); err != nil {
		return "", fmt.Errorf("cannot archive upload: %w", err)
	}
	return path, nil
}

// safeName strips directories and anything outside a conservative charset.
func safeName(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	if clean == "." || clean == ".." {
		return "upload.pdf"
	}
	return clean
}
