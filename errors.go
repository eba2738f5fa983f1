package main

import (
	"errors"
	"fmt"
)

var (
	// ErrObjectNotFound is returned by a BucketClient when no object exists under a key.
	ErrObjectNotFound = errors.New("object not found")

	ErrGroupUploadNotImplemented = errors.New("uploading a list of paths is not implemented")
)

// ConfigError marks a problem with a single configured target. The run logs it, skips the
// target and carries on with the next one.
type ConfigError struct {
	Target string
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	msg := fmt.Sprintf("invalid target %s: %s", e.Target, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func isConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}
