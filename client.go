package main

import (
	"io"
	"time"
)

type ObjectInfo struct {
	ModTime time.Time
	Size    int64
}

// BucketClient is the object store surface a run needs. StatObject returns
// ErrObjectNotFound, possibly wrapped, when nothing is stored under key.
type BucketClient interface {
	StatObject(bucketName string, key string) (ObjectInfo, error)
	Upload(bucketName string, key string, storageTier string, body io.Reader) error
}
