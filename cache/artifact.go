// Package cache persists NSEC3 reverse lookup tables.
//
// The file store is always used; redis and SQL stores can mirror every
// artifact so that other tools can query the tables without reading files.
package cache

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Load if a store has no artifact for a key
var ErrNotFound = errors.New("artifact not found")

// Artifact is the reverse lookup table of one hashing configuration
type Artifact struct {
	// Key identifies the hashing configuration, it is not part of the serialized form
	Key string `json:"-"`

	Domain       string            `json:"domain"`
	Salt         string            `json:"salt"`
	Iterations   uint32            `json:"iterations"`
	WordlistSize int               `json:"wordlist_size"`
	Hashes       map[string]string `json:"hashes"`
}

// NewArtifact takes ownership of hashes, a nil map is stored as an empty table
func NewArtifact(key, domain, salt string, iterations uint32, wordlistSize int,
	hashes map[string]string,
) *Artifact {
	if hashes == nil {
		hashes = map[string]string{}
	}

	return &Artifact{
		Key:          key,
		Domain:       domain,
		Salt:         salt,
		Iterations:   iterations,
		WordlistSize: wordlistSize,
		Hashes:       hashes,
	}
}

// Location describes where a store put an artifact
type Location struct {
	Target string
	// Size is the number of bytes written, or of rows for SQL stores
	Size int64
}

func (l Location) String() string {
	return fmt.Sprintf("%s (%d)", l.Target, l.Size)
}

// Store saves and loads artifacts by key
type Store interface {
	fmt.Stringer

	Save(ctx context.Context, artifact *Artifact) (Location, error)
	Load(ctx context.Context, key string) (*Artifact, error)
}
