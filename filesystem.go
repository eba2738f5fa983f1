package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
)

type walkFunc func(string) (map[string]os.FileInfo, error)

// walkDirectory returns every regular file below dirPath, at any depth, keyed by path.
// Symlinks are resolved: links to files are reported with the target's info, links to
// directories are not descended into, and dangling links are skipped.
func walkDirectory(dirPath string) (map[string]os.FileInfo, error) {
	fileMap := make(map[string]os.FileInfo)
	// the trailing separator makes Walk resolve dirPath itself when it is a symlink
	root := strings.TrimSuffix(dirPath, string(filepath.Separator)) + string(filepath.Separator)
	walkErr := filepath.Walk(root, func(path string, f os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if f.Mode()&os.ModeSymlink != 0 {
			target, statErr := os.Stat(path)
			if statErr != nil {
				log.Warn(fmt.Sprintf("Skipping dangling symlink %s: %s", path, statErr))
				return nil
			}
			f = target
		}
		if f.Mode().IsRegular() {
			fileMap[path] = f
		}
		return nil
	})

	return fileMap, walkErr
}
