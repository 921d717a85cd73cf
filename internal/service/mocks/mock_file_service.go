package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"reviewapi/internal/service"
	"reviewapi/internal/storage"
)

var _ service.FileService = (*MockFileService)(nil)

type MockFileService struct {
	mock.Mock
}

func (m *MockFileService) Open(ctx context.Context, key string) (io.ReadCloser, storage.ObjectAttrs, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, storage.ObjectAttrs{}, args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.Get(1).(storage.ObjectAttrs), args.Error(2)
}

func (m *MockFileService) Presign(ctx context.Context, publicPath string) (*service.PresignedLink, error) {
	args := m.Called(ctx, publicPath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PresignedLink), args.Error(1)
}
