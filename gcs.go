package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// gcsStorageClasses translates the S3 tier names used in the config to their GCS
// counterparts with the same minimum storage duration ordering.
var gcsStorageClasses = map[string]string{
	TierStandard:    "STANDARD",
	TierStandardIA:  "NEARLINE",
	TierGlacier:     "COLDLINE",
	TierDeepArchive: "ARCHIVE",
}

type GCSClient struct {
	Client *storage.Client
}

func NewGCSBucketClient(appConfig AppConfig) (BucketClient, error) {
	var bucketClient BucketClient

	opts := make([]option.ClientOption, 0)
	if appConfig.Provider.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(appConfig.Provider.CredentialsFile))
	}
	client, err := storage.NewClient(context.TODO(), opts...)
	if err != nil {
		return bucketClient, fmt.Errorf("Error creating gcs client: %w", err)
	}
	bucketClient = &GCSClient{Client: client}

	return bucketClient, nil
}

func (s *GCSClient) StatObject(bucketName, key string) (ObjectInfo, error) {
	attrs, err := s.Client.Bucket(bucketName).Object(key).Attrs(context.TODO())
	if errors.Is(err, storage.ErrObjectNotExist) {
		return ObjectInfo{}, fmt.Errorf("gs://%s/%s: %w", bucketName, key, ErrObjectNotFound)
	}
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("Bucket(%q).Object(%q).Attrs: %w", bucketName, key, err)
	}

	return ObjectInfo{ModTime: attrs.Updated, Size: attrs.Size}, nil
}

func (s *GCSClient) Upload(bucketName, key, storageTier string, body io.Reader) error {
	storageClass, ok := gcsStorageClasses[storageTier]
	if !ok {
		return fmt.Errorf("storage tier %s has no gcs storage class", storageTier)
	}

	ctx, cancel := context.WithCancel(context.TODO())
	defer cancel()
	objWriter := s.Client.Bucket(bucketName).Object(key).NewWriter(ctx)
	objWriter.StorageClass = storageClass

	return writeObject(objWriter, body, cancel)
}

// writeObject copies body into w and commits it with Close. On a copy error the upload is
// aborted through cancel first, so Close does not commit a truncated object.
func writeObject(w io.WriteCloser, body io.Reader, cancel context.CancelFunc) error {
	if _, uploadErr := io.Copy(w, body); uploadErr != nil {
		cancel()
		w.Close()
		return uploadErr
	}

	return w.Close()
}
