package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

type S3Client struct {
	Client *s3.Client
}

// awsConfigOptions prefers static keys from the config/environment and falls back to the
// shared profile chain.
func awsConfigOptions(profile, region, accessKey, secretKey string) []func(*config.LoadOptions) error {
	opts := []func(*config.LoadOptions) error{
		config.WithSharedConfigProfile(profile),
		config.WithRegion(region),
	}
	if accessKey != "" && secretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")))
	}
	return opts
}

func NewS3BucketClient(appConfig AppConfig) (BucketClient, error) {
	var bucketClient BucketClient

	cfg, err := config.LoadDefaultConfig(context.TODO(), awsConfigOptions(
		appConfig.Provider.Profile,
		appConfig.Provider.Region,
		appConfig.Provider.AccessKey,
		appConfig.Provider.SecretKey,
	)...)
	if err != nil {
		return bucketClient, fmt.Errorf("Error creating s3 client: %w", err)
	}
	bucketClient = &S3Client{Client: s3.NewFromConfig(cfg)}

	return bucketClient, nil
}

func (s *S3Client) StatObject(bucketName, key string) (ObjectInfo, error) {
	head, headErr := s.Client.HeadObject(context.TODO(), &s3.HeadObjectInput{
		Bucket: aws.String(bucketName),
		Key:    aws.String(key),
	})
	if headErr != nil {
		if isS3NotFound(headErr) {
			return ObjectInfo{}, fmt.Errorf("s3://%s/%s: %w", bucketName, key, ErrObjectNotFound)
		}
		return ObjectInfo{}, fmt.Errorf("head s3://%s/%s: %w", bucketName, key, headErr)
	}

	info := ObjectInfo{Size: head.ContentLength}
	if head.LastModified != nil {
		info.ModTime = *head.LastModified
	}
	return info, nil
}

// isS3NotFound recognises a missing key. HeadObject has no body, so depending on the
// endpoint the error surfaces as a modeled NotFound, a bare API code, or only a 404 status.
func isS3NotFound(err error) bool {
	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchKey":
			return true
		}
	}
	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) && respErr.HTTPStatusCode() == http.StatusNotFound {
		return true
	}
	return false
}

func (s *S3Client) Upload(bucketName, key, storageTier string, body io.Reader) error {
	uploader := manager.NewUploader(s.Client)
	_, putErr := uploader.Upload(context.TODO(), &s3.PutObjectInput{
		Bucket:       aws.String(bucketName),
		Key:          aws.String(key),
		Body:         body,
		StorageClass: types.StorageClass(storageTier),
	})

	return putErr
}
