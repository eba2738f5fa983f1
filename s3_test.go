package main

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"
	"github.com/stretchr/testify/assert"
)

func responseError(status int) error {
	return &awshttp.ResponseError{
		ResponseError: &smithyhttp.ResponseError{
			Response: &smithyhttp.Response{Response: &http.Response{StatusCode: status}},
			Err:      errors.New("mock response error"),
		},
	}
}

func TestIsS3NotFound(t *testing.T) {
	assert.True(t, isS3NotFound(&types.NotFound{}))
	assert.True(t, isS3NotFound(fmt.Errorf("operation error S3: HeadObject: %w", &types.NotFound{})))
	assert.True(t, isS3NotFound(&smithy.GenericAPIError{Code: "NoSuchKey"}))
	assert.True(t, isS3NotFound(responseError(http.StatusNotFound)))

	assert.False(t, isS3NotFound(&smithy.GenericAPIError{Code: "AccessDenied"}))
	assert.False(t, isS3NotFound(responseError(http.StatusForbidden)))
	assert.False(t, isS3NotFound(errors.New("dial tcp: i/o timeout")))
}

func TestEveryTierHasGCSStorageClass(t *testing.T) {
	for _, tier := range DefaultRetentionPolicy().Tiers() {
		_, ok := gcsStorageClasses[tier]
		assert.True(t, ok, tier)
	}
	assert.Equal(t, "ARCHIVE", gcsStorageClasses[TierDeepArchive])
}
