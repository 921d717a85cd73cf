package mocks

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"reviewapi/internal/storage"
)

// MockStorage is a testify mock of storage.Storage. A nil reader in a Get
// expectation means the call fails with the expectation's error.
type MockStorage struct {
	mock.Mock
}

var _ storage.Storage = (*MockStorage)(nil)

func (m *MockStorage) Put(ctx context.Context, key string, r io.Reader, opt storage.PutOptions) (storage.ObjectAttrs, error) {
	args := m.Called(ctx, key, r, opt)
	attrs, _ := args.Get(0).(storage.ObjectAttrs)
	return attrs, args.Error(1)
}

func (m *MockStorage) Get(ctx context.Context, key string) (io.ReadCloser, storage.ObjectAttrs, error) {
	args := m.Called(ctx, key)
	rc, _ := args.Get(0).(io.ReadCloser)
	if rc == nil {
		return nil, storage.ObjectAttrs{}, args.Error(2)
	}
	attrs, _ := args.Get(1).(storage.ObjectAttrs)
	return rc, attrs, args.Error(2)
}

func (m *MockStorage) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockStorage) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, key, expiry)
	return args.String(0), args.Error(1)
}
