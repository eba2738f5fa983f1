package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSNSPublishAllTypes(t *testing.T) {
	mockNotifier := &SNSNotifier{
		Client: NewMockSNSClient(),
		Topic:  "mock-topic",
		Bucket: "not-real-bucket",
	}
	mockResults := NewResultMap()
	mockResults.Upload["photos"] = nil
	mockResults.Upload["docs"] = errors.New("RequestTimeout")
	mockResults.Invalid["[/a, /b]"] = errors.New("needs objectName")
	mockResults.Skip["music"] = "too recent"

	expectedMessage := `Uploads:
  - docs => RequestTimeout
  - photos => <nil>


Invalid:
  - [/a, /b] => needs objectName


Skipped:
  - music => too recent
`

	assert.NoError(t, mockNotifier.NotifyRunResults(mockResults))

	mockClient := mockNotifier.Client.(*MockSNSClient)
	assert.Len(t, mockClient.PublishRequests, 1)
	assert.Equal(t, "Backup failed: not-real-bucket", *mockClient.PublishRequests[0].Subject)
	assert.Equal(t, "mock-topic", *mockClient.PublishRequests[0].TopicArn)
	assert.Equal(t, expectedMessage, *mockClient.PublishRequests[0].Message)
}

func TestSNSQuietWhenEverythingSkipped(t *testing.T) {
	mockNotifier := &SNSNotifier{Client: NewMockSNSClient(), Topic: "mock-topic"}
	mockResults := NewResultMap()
	mockResults.Skip["music"] = "too recent"

	assert.NoError(t, mockNotifier.NotifyRunResults(mockResults))
	assert.Len(t, mockNotifier.Client.(*MockSNSClient).PublishRequests, 0)
}

func TestSNSSubjectOnSuccess(t *testing.T) {
	mockNotifier := &SNSNotifier{Client: NewMockSNSClient(), Topic: "mock-topic", Bucket: "b"}
	mockResults := NewResultMap()
	mockResults.Upload["photos"] = nil

	assert.NoError(t, mockNotifier.NotifyRunResults(mockResults))
	mockClient := mockNotifier.Client.(*MockSNSClient)
	assert.Equal(t, "Backup succeeded: b", *mockClient.PublishRequests[0].Subject)
	assert.Equal(t, "Uploads:\n  - photos => <nil>\n", *mockClient.PublishRequests[0].Message)
}
