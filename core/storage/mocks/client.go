// Package mocks provides a testify mock of storage.Client.
package mocks

import (
	"context"
	"io"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/mock"
)

// Client is a mock of storage.Client that also keeps the bytes of every
// successful PutObject call.
type Client struct {
	mock.Mock

	mu      sync.Mutex
	objects map[string][]byte
}

// NewClient returns a mock whose expectations are asserted when the test ends.
func NewClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *Client {
	c := &Client{objects: make(map[string][]byte)}
	c.Test(t)
	t.Cleanup(func() { c.AssertExpectations(t) })
	return c
}

// Object returns the uploaded body of key, if any.
func (m *Client) Object(bucket, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	body, ok := m.objects[bucket+"/"+key]
	return body, ok
}

func (m *Client) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	args := m.Called(ctx, bucketName)
	return args.Bool(0), args.Error(1)
}

func (m *Client) MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error {
	return m.Called(ctx, bucketName, opts).Error(0)
}

func (m *Client) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	args := m.Called(ctx, bucketName, objectName, reader, objectSize, opts)
	info, err := args.Get(0).(minio.UploadInfo), args.Error(1)
	if err != nil {
		return info, err
	}

	body, readErr := io.ReadAll(reader)
	if readErr != nil {
		return minio.UploadInfo{}, readErr
	}
	m.mu.Lock()
	if m.objects == nil {
		m.objects = make(map[string][]byte)
	}
	m.objects[bucketName+"/"+objectName] = body
	m.mu.Unlock()

	info.Bucket, info.Key, info.Size = bucketName, objectName, int64(len(body))
	return info, nil
}

func (m *Client) RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error {
	return m.Called(ctx, bucketName, objectName, opts).Error(0)
}
