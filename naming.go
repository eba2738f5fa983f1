package main

import "strings"

var keySeparators = strings.NewReplacer("/", "_", "\\", "_")

// resolveObjectName returns the configured object name, or flattens a single path into a
// key. Flattening is best effort: distinct paths such as `/a/b` and `/a_b` map to the same key.
func resolveObjectName(target TargetConfig) (string, error) {
	if target.ObjectName != "" {
		return target.ObjectName, nil
	}

	path, ok := target.Path.Single()
	if !ok {
		return "", &ConfigError{
			Target: target.Path.String(),
			Reason: "a list of paths requires an explicit objectName",
		}
	}

	return keySeparators.Replace(strings.TrimPrefix(path, `C:\`)), nil
}
