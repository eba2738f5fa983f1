package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

func NewSNSNotifier(appConfig AppConfig) (Notifier, error) {
	var notifier Notifier

	cfg, cfgErr := config.LoadDefaultConfig(context.TODO(), awsConfigOptions(
		appConfig.Notify.Profile,
		appConfig.Notify.Region,
		appConfig.Provider.AccessKey,
		appConfig.Provider.SecretKey,
	)...)
	if cfgErr != nil {
		return notifier, cfgErr
	}
	snsClient := &SNSClient{sns.NewFromConfig(cfg)}
	notifier = &SNSNotifier{Client: snsClient, Topic: appConfig.Notify.ID, Bucket: appConfig.Provider.Bucket}

	return notifier, nil
}

type SNSClientIface interface {
	PublishMessage(msg *sns.PublishInput) error
}

type SNSClient struct {
	Client *sns.Client
}

func (s *SNSClient) PublishMessage(msg *sns.PublishInput) error {
	_, publishErr := s.Client.Publish(context.TODO(), msg)
	return publishErr
}

type SNSNotifier struct {
	Client SNSClientIface
	Topic  string
	Bucket string
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// NotifyRunResults publishes a summary when a run uploaded, failed or rejected something.
// Runs that only skipped targets stay quiet.
func (s *SNSNotifier) NotifyRunResults(resultMap *ResultMap) error {
	if len(resultMap.Upload) == 0 && len(resultMap.Invalid) == 0 && resultMap.Fatal == nil {
		return nil
	}

	var body strings.Builder
	if resultMap.Fatal != nil {
		body.WriteString(fmt.Sprintf("Run aborted: %s\n\n\n", resultMap.Fatal))
	}
	if len(resultMap.Upload) > 0 {
		body.WriteString("Uploads:\n")
		for _, key := range sortedKeys(resultMap.Upload) {
			body.WriteString(fmt.Sprintf("  - %s => %v\n", key, resultMap.Upload[key]))
		}
		body.WriteString("\n\n")
	}
	if len(resultMap.Invalid) > 0 {
		body.WriteString("Invalid:\n")
		for _, key := range sortedKeys(resultMap.Invalid) {
			body.WriteString(fmt.Sprintf("  - %s => %v\n", key, resultMap.Invalid[key]))
		}
		body.WriteString("\n\n")
	}
	if len(resultMap.Skip) > 0 {
		body.WriteString("Skipped:\n")
		for _, key := range sortedKeys(resultMap.Skip) {
			body.WriteString(fmt.Sprintf("  - %s => %s\n", key, resultMap.Skip[key]))
		}
	}

	statusString := "succeeded"
	if resultMap.Failed() {
		statusString = "failed"
	}

	snsPublishReq := &sns.PublishInput{
		Message:  aws.String(strings.TrimRight(body.String(), "\n") + "\n"),
		TopicArn: aws.String(s.Topic),
		Subject:  aws.String(fmt.Sprintf("Backup %s: %s", statusString, s.Bucket)),
	}

	return s.Client.PublishMessage(snsPublishReq)
}
