package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"
)

// Executor uploads targets the DecisionEngine picked for upload.
type Executor struct {
	Client  BucketClient
	Bucket  string
	TempDir string
	Archive string
}

// Execute packages directories before uploading them. The returned error is the upload
// outcome for this target only.
func (e *Executor) Execute(target TargetConfig, objectName string) error {
	path, ok := target.Path.Single()
	if !ok {
		return &ConfigError{Target: target.Path.String(), Reason: "cannot upload", Err: ErrGroupUploadNotImplemented}
	}

	info, statErr := os.Stat(path)
	if statErr != nil {
		return fmt.Errorf("stat %s: %w", path, statErr)
	}
	if !info.IsDir() {
		return e.uploadFile(path, objectName, target.StorageClass)
	}

	archivePath, archiveErr := packageDirectory(path, e.TempDir, e.Archive, objectName)
	if archiveErr != nil {
		return archiveErr
	}
	defer func() {
		if removeErr := os.Remove(archivePath); removeErr != nil {
			log.Warn(fmt.Sprintf("Error removing backup archive %s: %s", archivePath, removeErr))
		}
	}()

	return e.uploadFile(archivePath, objectName, target.StorageClass)
}

func (e *Executor) uploadFile(path, objectName, storageTier string) error {
	uploadFile, openErr := os.Open(path)
	if openErr != nil {
		return fmt.Errorf("opening %s: %w", path, openErr)
	}
	defer uploadFile.Close()

	var size int64
	if info, statErr := uploadFile.Stat(); statErr == nil {
		size = info.Size()
	}

	log.Info(fmt.Sprintf("Uploading %s (%s) as %s/%s with storage class %s",
		path, humanize.Bytes(uint64(size)), e.Bucket, objectName, storageTier))
	body := newProgressReader(uploadFile, path, size)
	if putErr := e.Client.Upload(e.Bucket, objectName, storageTier, body); putErr != nil {
		return fmt.Errorf("uploading %s as %s: %w", path, objectName, putErr)
	}

	log.Info("Upload succeeded for ", objectName)
	return nil
}
