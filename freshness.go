package main

import (
	"fmt"
	"os"
	"time"
)

var (
	concreteWalkFunc = walkDirectory
	concreteStatFunc = os.Stat

	// epochZero stands for "no files" locally and "no snapshot" remotely.
	epochZero = time.Unix(0, 0).UTC()
)

// latestModTime returns the mtime of a file, or the most recent mtime of any file below a
// directory. An empty directory yields epochZero.
func latestModTime(path string) (time.Time, error) {
	info, statErr := concreteStatFunc(path)
	if statErr != nil {
		return epochZero, fmt.Errorf("stat %s: %w", path, statErr)
	}
	if !info.IsDir() {
		return info.ModTime().UTC(), nil
	}

	fileMap, walkErr := concreteWalkFunc(path)
	if walkErr != nil {
		return epochZero, fmt.Errorf("walking %s: %w", path, walkErr)
	}

	latest := epochZero
	for _, f := range fileMap {
		if modTime := f.ModTime().UTC(); modTime.After(latest) {
			latest = modTime
		}
	}

	return latest, nil
}

// localFreshness computes the freshness of a target path. A group is only as fresh as its
// stalest member, so one changed member does not trigger a group backup.
func localFreshness(targetPath TargetPath) (time.Time, error) {
	if path, ok := targetPath.Single(); ok {
		return latestModTime(path)
	}
	if len(targetPath.Paths) == 0 {
		return epochZero, fmt.Errorf("empty path list")
	}

	var freshness time.Time
	for i, path := range targetPath.Paths {
		latest, err := latestModTime(path)
		if err != nil {
			return epochZero, err
		}
		if i == 0 || latest.Before(freshness) {
			freshness = latest
		}
	}

	return freshness, nil
}
