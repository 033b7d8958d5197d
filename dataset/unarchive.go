package dataset

import (
	"archive/zip"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pierrec/lz4"
)

// readCloser closes every layer of a decompression stack, innermost last.
type readCloser struct {
	io.Reader
	closers []io.Closer
}

func (rc *readCloser) Close() error {
	var first error
	for _, c := range rc.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// openInput opens filePath, transparently decompressing .gz, .lz4 and .zip
// (largest entry) files.
func openInput(filePath string) (io.ReadCloser, error) {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".zip":
		return openZip(filePath)
	case ".gz":
		return openGzip(filePath)
	case ".lz4":
		return openLZ4(filePath)
	}
	return os.Open(filePath)
}

func openZip(filePath string) (io.ReadCloser, error) {
	r, err := zip.OpenReader(filePath)
	if err != nil {
		return nil, err
	}

	var largestFile *zip.File
	var largestSize uint64
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if largestFile == nil || f.UncompressedSize64 > largestSize {
			largestFile = f
			largestSize = f.UncompressedSize64
		}
	}
	if largestFile == nil {
		r.Close()
		return nil, fmt.Errorf("%s: %w", filePath, ErrEmptyFile)
	}

	rc, err := largestFile.Open()
	if err != nil {
		r.Close()
		return nil, err
	}
	return &readCloser{Reader: rc, closers: []io.Closer{rc, r}}, nil
}

func openGzip(filePath string) (io.ReadCloser, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	gr, err := gzip.NewReader(file)
	if err != nil {
		file.Close()
		return nil, err
	}
	return &readCloser{Reader: gr, closers: []io.Closer{gr, file}}, nil
}

func openLZ4(filePath string) (io.ReadCloser, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	return &readCloser{Reader: lz4.NewReader(file), closers: []io.Closer{file}}, nil
}
