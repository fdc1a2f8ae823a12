package cache

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockStore is a Store driven by testify expectations
type MockStore struct {
	mock.Mock
}

func (m *MockStore) String() string {
	return "mock store"
}

func (m *MockStore) Save(ctx context.Context, artifact *Artifact) (Location, error) {
	args := m.Called(ctx, artifact)

	return args.Get(0).(Location), args.Error(1)
}

func (m *MockStore) Load(ctx context.Context, key string) (*Artifact, error) {
	args := m.Called(ctx, key)

	if a, ok := args.Get(0).(*Artifact); ok {
		return a, args.Error(1)
	}

	return nil, args.Error(1)
}
