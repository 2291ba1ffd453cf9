// Copyright 2025 The Sigstore Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package io

import (
	"errors"
	"fmt"
	"io"
	"reflect"

	"github.com/spf13/afero"

	fderrors "github.com/sigstore/filedigest/pkg/errors"
	"github.com/sigstore/filedigest/pkg/hashing/digests"
	hashengines "github.com/sigstore/filedigest/pkg/hashing/engines"
)

// DefaultChunkSize is the number of bytes read from the file per iteration.
const DefaultChunkSize = 8192

var _ hashengines.HashEngine = (*SimpleFileHasher)(nil)

// SimpleFileHasher hashes an entire file by streaming it into an inner
// StreamingHashEngine. It reads the file exactly once, chunkSize bytes at a
// time, and never holds more than one chunk in memory.
type SimpleFileHasher struct {
	fs            afero.Fs
	filePath      string
	contentHasher hashengines.StreamingHashEngine
	chunkSize     int

	// Totals of the last Compute call.
	bytesRead int64
	chunks    int
}

// NewSimpleFileHasher constructs a SimpleFileHasher.
//
//   - fs: filesystem the file is opened from; nil means the OS filesystem
//   - filePath: path to the file to hash
//   - contentHasher: the StreamingHashEngine used to hash file contents
//   - chunkSize: number of bytes to read per chunk; 0 means DefaultChunkSize
func NewSimpleFileHasher(
	fs afero.Fs,
	filePath string,
	contentHasher hashengines.StreamingHashEngine,
	chunkSize int,
) (*SimpleFileHasher, error) {
	if chunkSize < 0 {
		return nil, fmt.Errorf("chunk size must be non-negative, got %d", chunkSize)
	}

	if filePath == "" {
		return nil, fmt.Errorf("file path must be non-empty")
	}

	if isNilEngine(contentHasher) {
		return nil, fmt.Errorf("content hasher must not be nil")
	}

	if fs == nil {
		fs = afero.NewOsFs()
	}
	if chunkSize == 0 {
		chunkSize = DefaultChunkSize
	}

	return &SimpleFileHasher{
		fs:            fs,
		filePath:      filePath,
		contentHasher: contentHasher,
		chunkSize:     chunkSize,
	}, nil
}

// DigestName is delegated to the inner content hasher.
func (h *SimpleFileHasher) DigestName() string {
	return h.contentHasher.DigestName()
}

// DigestSize is delegated to the inner content hasher.
func (h *SimpleFileHasher) DigestSize() int {
	return h.contentHasher.DigestSize()
}

// ChunkSize returns the read granularity in bytes.
func (h *SimpleFileHasher) ChunkSize() int {
	return h.chunkSize
}

// BytesRead returns how many bytes the last Compute call fed to the hasher.
func (h *SimpleFileHasher) BytesRead() int64 {
	return h.bytesRead
}

// Chunks returns how many non-empty reads the last Compute call performed.
func (h *SimpleFileHasher) Chunks() int {
	return h.chunks
}

// Compute hashes the entire file and returns its Digest.
//
// Failing to stat or open the file, or finding something other than a
// regular file at the path, yields an access error. A failed read after the
// file was opened yields an I/O error. Both are *errors.ChecksumError values
// and no partial digest is returned. The file is closed on every path.
func (h *SimpleFileHasher) Compute() (digests.Digest, error) {
	h.bytesRead, h.chunks = 0, 0

	info, err := h.fs.Stat(h.filePath)
	if err != nil {
		return digests.Digest{}, fderrors.NewAccessError(h.filePath, err)
	}
	if !info.Mode().IsRegular() {
		return digests.Digest{}, fderrors.NewAccessError(h.filePath,
			fmt.Errorf("not a regular file (mode %s)", info.Mode()))
	}

	f, err := h.fs.Open(h.filePath)
	if err != nil {
		return digests.Digest{}, fderrors.NewAccessError(h.filePath, err)
	}
	defer f.Close()

	// Reset inner state before each computation.
	h.contentHasher.Reset(nil)

	buf := make([]byte, h.chunkSize)
	for {
		n, err := f.Read(buf)
		if n > 0 {
			if uerr := h.contentHasher.Update(buf[:n]); uerr != nil {
				return digests.Digest{}, fderrors.NewIOError(h.filePath, fmt.Errorf("update digest: %w", uerr))
			}
			h.bytesRead += int64(n)
			h.chunks++
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return digests.Digest{}, fderrors.NewIOError(h.filePath, err)
		}
	}

	d, err := h.contentHasher.Compute()
	if err != nil {
		return digests.Digest{}, fderrors.NewIOError(h.filePath, fmt.Errorf("compute digest: %w", err))
	}

	return d, nil
}

// isNilEngine also catches a nil pointer stored in the interface, which
// would otherwise only fail on the first Reset.
func isNilEngine(e hashengines.StreamingHashEngine) bool {
	if e == nil {
		return true
	}
	v := reflect.ValueOf(e)
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}
