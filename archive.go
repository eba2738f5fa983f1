package main

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"

	log "github.com/sirupsen/logrus"
)

// packageDirectory writes every file below dir into a temporary archive and returns its
// path. The caller owns the file and must remove it.
func packageDirectory(dir, tempDir, format, objectName string) (string, error) {
	fileMap, walkErr := walkDirectory(dir)
	if walkErr != nil {
		return "", fmt.Errorf("Backup directory walk failed: %w", walkErr)
	}
	filesToCompress := make([]string, 0, len(fileMap))
	for path := range fileMap {
		filesToCompress = append(filesToCompress, path)
	}
	sort.Strings(filesToCompress)

	if tempDir == "" {
		tempDir = os.TempDir()
	}
	archivePattern := fmt.Sprintf("%s_*.%s", keySeparators.Replace(objectName), format)
	archiveFile, tempErr := ioutil.TempFile(tempDir, archivePattern)
	if tempErr != nil {
		return "", fmt.Errorf("creating archive for %s: %w", dir, tempErr)
	}
	defer archiveFile.Close()

	log.Info(fmt.Sprintf("Creating backup archive %s from %s (%d files)", archiveFile.Name(), dir, len(filesToCompress)))
	var archiveErr error
	switch format {
	case ArchiveZip:
		archiveErr = createZipArchive(dir, filesToCompress, archiveFile)
	default:
		archiveErr = createArchive(dir, filesToCompress, archiveFile)
	}
	if archiveErr != nil {
		archiveFile.Close()
		os.Remove(archiveFile.Name())
		return "", fmt.Errorf("archiving %s: %w", dir, archiveErr)
	}

	return archiveFile.Name(), nil
}

func createArchive(root string, files []string, buf io.Writer) error {
	gw := gzip.NewWriter(buf)
	tw := tar.NewWriter(gw)

	for _, file := range files {
		if err := addToArchive(tw, root, file); err != nil {
			return err
		}
	}

	if err := tw.Close(); err != nil {
		return err
	}
	return gw.Close()
}

func addToArchive(tw *tar.Writer, root, filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return err
	}

	header, err := tar.FileInfoHeader(info, info.Name())
	if err != nil {
		return err
	}

	header.Name, err = archiveEntryName(root, filename)
	if err != nil {
		return err
	}

	err = tw.WriteHeader(header)
	if err != nil {
		return err
	}

	_, err = io.Copy(tw, file)
	return err
}

func createZipArchive(root string, files []string, buf io.Writer) error {
	zw := zip.NewWriter(buf)

	for _, file := range files {
		if err := addToZipArchive(zw, root, file); err != nil {
			return err
		}
	}

	return zw.Close()
}

func addToZipArchive(zw *zip.Writer, root, filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return err
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	header.Method = zip.Deflate
	header.Name, err = archiveEntryName(root, filename)
	if err != nil {
		return err
	}

	entry, err := zw.CreateHeader(header)
	if err != nil {
		return err
	}

	_, err = io.Copy(entry, file)
	return err
}

// entries are stored relative to the archived directory
func archiveEntryName(root, filename string) (string, error) {
	rel, err := filepath.Rel(root, filename)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}
