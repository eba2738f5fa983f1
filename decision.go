package main

import (
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

type Action int

const (
	ActionSkip Action = iota
	ActionUpload
)

func (a Action) String() string {
	if a == ActionUpload {
		return "upload"
	}
	return "skip"
}

type Decision struct {
	Action     Action
	ObjectName string
	LastUpload time.Time
	Freshness  time.Time
	Reason     string
}

// DecisionEngine decides whether a target needs a new snapshot. It only reads from the
// bucket.
type DecisionEngine struct {
	Client BucketClient
	Bucket string
	Policy RetentionPolicy
}

// Decide returns a *ConfigError for targets that cannot be handled. Any other error means
// the store or the filesystem could not be read and the run should stop.
func (e *DecisionEngine) Decide(target TargetConfig) (Decision, error) {
	var decision Decision

	interval, ok := e.Policy.Interval(target.StorageClass)
	if !ok {
		return decision, &ConfigError{
			Target: target.Path.String(),
			Reason: fmt.Sprintf("storage class %q is not allowed, supported: %v", target.StorageClass, e.Policy.Tiers()),
		}
	}

	if len(target.Path.Paths) == 0 {
		return decision, &ConfigError{Target: target.String(), Reason: "no path configured"}
	}

	objectName, nameErr := resolveObjectName(target)
	if nameErr != nil {
		return decision, nameErr
	}
	if target.ObjectName == "" {
		log.Info(fmt.Sprintf("No object name chosen for %s, using %s", target.Path, objectName))
	}
	decision.ObjectName = objectName

	lastUpload, statErr := e.lastUpload(objectName)
	if statErr != nil {
		return decision, statErr
	}
	decision.LastUpload = lastUpload

	freshness, freshnessErr := localFreshness(target.Path)
	if freshnessErr != nil {
		return decision, freshnessErr
	}
	decision.Freshness = freshness
	log.Info(fmt.Sprintf("Found latest changes in %s dated %s", target.Path, freshness.Format(time.RFC3339)))

	decision.Action, decision.Reason = decide(freshness, lastUpload, interval, target.Force)

	return decision, nil
}

func (e *DecisionEngine) lastUpload(objectName string) (time.Time, error) {
	info, statErr := e.Client.StatObject(e.Bucket, objectName)
	if errors.Is(statErr, ErrObjectNotFound) {
		log.Info(fmt.Sprintf("No previous backup for %s, proceeding with first upload", objectName))
		return epochZero, nil
	}
	if statErr != nil {
		return epochZero, fmt.Errorf("reading last backup of %s: %w", objectName, statErr)
	}

	lastUpload := info.ModTime.UTC()
	log.Info(fmt.Sprintf("Found previous backup of %s dated %s", objectName, lastUpload.Format(time.RFC3339)))
	return lastUpload, nil
}

// decide applies the cadence gate first. force only lifts the cadence gate: content that
// has not changed since the last upload is never uploaded again.
func decide(freshness, lastUpload time.Time, interval time.Duration, force bool) (Action, string) {
	switch {
	case freshness.After(lastUpload.Add(interval)):
		return ActionUpload, "latest change is past the retention interval of the last backup"
	case force && freshness.After(lastUpload):
		return ActionUpload, "last backup is too recent but force is set"
	case force:
		return ActionSkip, "nothing changed since the last backup"
	default:
		return ActionSkip, "last backup is too recent, set force to upload anyway"
	}
}
