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

// Package hashengines defines the hash accumulator used to digest file
// contents.
//
// A StreamingHashEngine is fed incrementally with Update and finalized once
// with Compute. After Compute the engine refuses further updates until it is
// Reset.
package hashengines

import (
	"errors"

	"github.com/sigstore/filedigest/pkg/hashing/digests"
)

// ErrFinalized is returned when an engine is updated or finalized again after
// Compute has already produced its digest.
var ErrFinalized = errors.New("hash engine already finalized")

// HashEngine defines the core interface for computing cryptographic hashes.
type HashEngine interface {
	// Compute finalizes the hash computation and returns the resulting digest.
	// It succeeds at most once per Reset; later calls return ErrFinalized.
	Compute() (digests.Digest, error)

	// DigestName returns the canonical name of the hash algorithm.
	// This name is transferred to the algorithm field of the Digest returned by Compute.
	DigestName() string

	// DigestSize returns the size in bytes of digests produced by this engine.
	// The returned value must match the Size() of the Digest returned by Compute.
	DigestSize() int
}

// Streaming defines the interface for incrementally feeding data to a hash engine.
type Streaming interface {
	// Update appends additional bytes to the data being hashed, in order.
	// It returns ErrFinalized if Compute has already been called.
	Update(data []byte) error

	// Reset discards the hash state, clears the finalized mark and optionally
	// seeds the new state with data.
	Reset(data []byte)
}

// StreamingHashEngine combines HashEngine and Streaming for incremental hashing.
type StreamingHashEngine interface {
	HashEngine
	Streaming
}
