package main

import (
	"fmt"
	"io"
	"io/ioutil"
)

type MockBucketClient struct {
	StatRequests   []MockRequest
	UploadRequests []MockRequest
	mockObjects    map[string]ObjectInfo
	statErr        error
	uploadErr      error
}

type MockRequest struct {
	Bucket      string
	Key         string
	StorageTier string
	Body        []byte
}

func NewMockClient(mocked map[string]ObjectInfo) *MockBucketClient {
	return &MockBucketClient{
		StatRequests:   make([]MockRequest, 0),
		UploadRequests: make([]MockRequest, 0),
		mockObjects:    mocked,
	}
}

func (s *MockBucketClient) StatObject(bucketName string, key string) (ObjectInfo, error) {
	s.StatRequests = append(s.StatRequests, MockRequest{Bucket: bucketName, Key: key})
	if s.statErr != nil {
		return ObjectInfo{}, s.statErr
	}
	info, ok := s.mockObjects[key]
	if !ok {
		return ObjectInfo{}, fmt.Errorf("mock://%s/%s: %w", bucketName, key, ErrObjectNotFound)
	}
	return info, nil
}

func (s *MockBucketClient) Upload(bucketName string, key string, storageTier string, body io.Reader) error {
	content, readErr := ioutil.ReadAll(body)
	if readErr != nil {
		return readErr
	}
	s.UploadRequests = append(s.UploadRequests, MockRequest{
		Bucket:      bucketName,
		Key:         key,
		StorageTier: storageTier,
		Body:        content,
	})
	return s.uploadErr
}
