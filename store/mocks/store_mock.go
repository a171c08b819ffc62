package mocks

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Load(ctx context.Context) ([]json.RawMessage, error) {
	args := m.Called(ctx)
	return args.Get(0).([]json.RawMessage), args.Error(1)
}

func (m *MockStore) Append(ctx context.Context, entry json.RawMessage) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockStore) Reset(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
