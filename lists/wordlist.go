// Package lists provides the candidate labels hashed by the engine.
package lists

import (
	"context"
	"fmt"
	"os"

	"github.com/seifreed/NSECGenerator/lists/parsers"
	"github.com/seifreed/NSECGenerator/log"
)

// ReadWordlist returns every non-empty, trimmed line of the file at path.
//
// Duplicates are kept so the caller's wordlist size matches the file.
func ReadWordlist(ctx context.Context, path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("can't open wordlist: %w", err)
	}
	defer f.Close()

	labels, err := parsers.Collect(ctx, parsers.Lines(f))
	if err != nil {
		return nil, fmt.Errorf("can't read wordlist '%s': %w", path, err)
	}

	log.PrefixedLog("lists").Debugf("read %d labels from '%s'", len(labels), path)

	return labels, nil
}
