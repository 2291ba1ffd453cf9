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

// Package checksum computes the Base64-encoded MD5 checksum of a file.
//
// The file is streamed in fixed-size chunks through an MD5 accumulator, so
// memory use does not grow with the file size. Any failure to open or read
// the file is returned as an *errors.ChecksumError matching
// errors.ErrChecksumFailed.
package checksum

import (
	"context"
	"fmt"

	"github.com/spf13/afero"

	fderrors "github.com/sigstore/filedigest/pkg/errors"
	hashio "github.com/sigstore/filedigest/pkg/hashing/engines/io"
	"github.com/sigstore/filedigest/pkg/hashing/engines/memory"
	"github.com/sigstore/filedigest/pkg/logging"
	"github.com/sigstore/filedigest/pkg/tracing"
)

// DefaultChunkSize is the read granularity used when Options.ChunkSize is zero.
const DefaultChunkSize = hashio.DefaultChunkSize

// Options configures a Computer. The zero value is ready to use.
type Options struct {
	// Fs is the filesystem files are read from. Defaults to the OS filesystem.
	Fs afero.Fs
	// ChunkSize is the number of bytes read per iteration. Zero selects
	// DefaultChunkSize. It never affects the result.
	ChunkSize int
	// Logger receives debug diagnostics. Defaults to logging.Default().
	Logger logging.Logger
}

// Computer computes encoded checksums. It keeps no state between calls.
type Computer struct {
	fs        afero.Fs
	chunkSize int
	logger    logging.Logger
}

// New validates opts and returns a Computer.
func New(opts Options) (*Computer, error) {
	if opts.ChunkSize < 0 {
		return nil, fderrors.NewValidationError("ChunkSize", opts.ChunkSize,
			fmt.Errorf("chunk size must be non-negative, got %d", opts.ChunkSize))
	}

	c := &Computer{
		fs:        opts.Fs,
		chunkSize: opts.ChunkSize,
		logger:    logging.EnsureLogger(opts.Logger),
	}
	if c.fs == nil {
		c.fs = afero.NewOsFs()
	}
	if c.chunkSize == 0 {
		c.chunkSize = DefaultChunkSize
	}
	return c, nil
}

// Compute returns the standard Base64 encoding of the MD5 digest of the file
// at path.
//
// ctx only carries tracing spans; the read loop runs to completion or to the
// first error and cannot be cancelled.
func (c *Computer) Compute(ctx context.Context, path string) (string, error) {
	attrs := map[string]interface{}{
		"filedigest.path":       path,
		"filedigest.algorithm":  memory.MD5Name,
		"filedigest.chunk_size": c.chunkSize,
	}

	var encoded string
	err := tracing.Run(ctx, "Checksum", attrs, func(context.Context) error {
		if path == "" {
			return fderrors.NewAccessError(path, fmt.Errorf("file path must be non-empty"))
		}

		hasher, err := hashio.NewSimpleFileHasher(c.fs, path, memory.NewMD5Engine(nil), c.chunkSize)
		if err != nil {
			return fmt.Errorf("create file hasher: %w", err)
		}

		log := c.logger.WithFields(map[string]interface{}{
			"path":       path,
			"chunk_size": c.chunkSize,
		})
		log.Debug("computing %s checksum", hasher.DigestName())

		d, err := hasher.Compute()
		if err != nil {
			log.Debug("checksum failed after %d bytes: %v", hasher.BytesRead(), err)
			return err
		}

		log.Debug("read %d bytes in %d chunks", hasher.BytesRead(), hasher.Chunks())
		encoded = d.Base64()
		return nil
	})
	if err != nil {
		return "", err
	}

	return encoded, nil
}

// Compute computes the encoded checksum of path with default options.
func Compute(ctx context.Context, path string) (string, error) {
	c, err := New(Options{})
	if err != nil {
		return "", err
	}
	return c.Compute(ctx, path)
}
