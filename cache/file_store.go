package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/seifreed/NSECGenerator/nsec3"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// FileStore writes artifacts as pretty printed JSON files into one directory
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Dir returns the output directory
func (s *FileStore) Dir() string {
	return s.dir
}

// Path returns the file an artifact with key is written to
func (s *FileStore) Path(key string) string {
	return filepath.Join(s.dir, nsec3.CacheFileName(key))
}

func (s *FileStore) String() string {
	return fmt.Sprintf("file store '%s'", s.dir)
}

// Save replaces the artifact's file atomically, a failed write never leaves a partial file behind
func (s *FileStore) Save(ctx context.Context, artifact *Artifact) (Location, error) {
	if err := ctx.Err(); err != nil {
		return Location{}, err
	}

	if err := os.MkdirAll(s.dir, dirPerm); err != nil {
		return Location{}, fmt.Errorf("can't create output directory '%s': %w", s.dir, err)
	}

	data, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return Location{}, fmt.Errorf("can't serialize artifact: %w", err)
	}

	target := s.Path(artifact.Key)

	if err := writeFileAtomic(target, data); err != nil {
		return Location{}, err
	}

	return Location{Target: target, Size: int64(len(data))}, nil
}

func writeFileAtomic(target string, data []byte) (rerr error) {
	tmp, err := os.CreateTemp(filepath.Dir(target), ".nsec3_*.tmp")
	if err != nil {
		return fmt.Errorf("can't create temp file: %w", err)
	}

	defer func() {
		if rerr != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()

		return fmt.Errorf("can't write '%s': %w", tmp.Name(), err)
	}

	if err := tmp.Chmod(filePerm); err != nil {
		_ = tmp.Close()

		return fmt.Errorf("can't set permissions of '%s': %w", tmp.Name(), err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("can't close '%s': %w", tmp.Name(), err)
	}

	if err := os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("can't write cache file '%s': %w", target, err)
	}

	return nil
}

// Load reads the artifact with key from the output directory
func (s *FileStore) Load(ctx context.Context, key string) (*Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return LoadFile(s.Path(key))
}

// LoadFile reads an artifact file, the key is taken from the file name
func LoadFile(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}

		return nil, fmt.Errorf("can't read cache file: %w", err)
	}

	var artifact Artifact

	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("can't parse cache file '%s': %w", path, err)
	}

	name := filepath.Base(path)
	artifact.Key = strings.TrimSuffix(strings.TrimPrefix(name, "nsec3_"), ".json")

	if artifact.Hashes == nil {
		artifact.Hashes = map[string]string{}
	}

	return &artifact, nil
}
