package build

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
)

// manifestVersion prefixes the encoded manifest. A different version is
// treated as no manifest at all.
const manifestVersion byte = 1

const manifestName = "manifest.msgpack"

// manifest records what the previous build wrote.
type manifest struct {
	BuildID string `msgpack:"id"`
	// Compress records whether .br files were written
	Compress bool `msgpack:"br"`
	// Files maps output paths to content hashes
	Files map[string]uint64 `msgpack:"files"`
}

func newManifest() *manifest {
	return &manifest{Files: make(map[string]uint64)}
}

// loadManifest reads the manifest at p. A missing or outdated manifest yields
// an empty one.
func loadManifest(p string) (*manifest, error) {
	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return newManifest(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	if len(data) == 0 || data[0] != manifestVersion {
		return newManifest(), nil
	}

	m := newManifest()
	if err := msgpack.Unmarshal(data[1:], m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	if m.Files == nil {
		m.Files = make(map[string]uint64)
	}
	return m, nil
}

func (m *manifest) save(p string) error {
	data, err := msgpack.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	return os.WriteFile(p, append([]byte{manifestVersion}, data...), 0o644)
}
