package cache

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/seifreed/NSECGenerator/log"
)

// ChainedStore saves into a primary store and every mirror
type ChainedStore struct {
	primary Store
	mirrors []Store
}

func NewChainedStore(primary Store, mirrors ...Store) *ChainedStore {
	return &ChainedStore{primary: primary, mirrors: mirrors}
}

func (s *ChainedStore) String() string {
	names := make([]string, 0, len(s.mirrors)+1)
	names = append(names, s.primary.String())

	for _, m := range s.mirrors {
		names = append(names, m.String())
	}

	return strings.Join(names, ", ")
}

// Save returns the primary's location, and an error listing every store that failed.
// Mirrors are written even if the primary failed.
func (s *ChainedStore) Save(ctx context.Context, artifact *Artifact) (Location, error) {
	var errs *multierror.Error

	loc, err := s.primary.Save(ctx, artifact)
	if err != nil {
		errs = multierror.Append(errs, fmt.Errorf("%s: %w", s.primary, err))
	}

	for _, m := range s.mirrors {
		mloc, err := m.Save(ctx, artifact)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("%s: %w", m, err))

			continue
		}

		log.PrefixedLog("cache").Debugf("mirrored %s to %s", artifact.Key, mloc)
	}

	return loc, errs.ErrorOrNil()
}

func (s *ChainedStore) Load(ctx context.Context, key string) (*Artifact, error) {
	return s.primary.Load(ctx, key)
}

// Close closes every store holding a connection
func (s *ChainedStore) Close() error {
	var errs *multierror.Error

	for _, st := range append([]Store{s.primary}, s.mirrors...) {
		if c, ok := st.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = multierror.Append(errs, err)
			}
		}
	}

	return errs.ErrorOrNil()
}
