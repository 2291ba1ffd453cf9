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

package memory

import (
	"fmt"
	"hash"

	"github.com/sigstore/filedigest/pkg/hashing/digests"
	hashengines "github.com/sigstore/filedigest/pkg/hashing/engines"
)

// Ensure GenericHashEngine implements StreamingHashEngine at compile time.
var _ hashengines.StreamingHashEngine = (*GenericHashEngine)(nil)

// HashFactoryFunc is a function that creates a new hash.Hash instance.
type HashFactoryFunc func() hash.Hash

// GenericHashEngine wraps any hash.Hash and adds the finalize-once rule on
// top of it.
type GenericHashEngine struct {
	name      string
	size      int
	factory   HashFactoryFunc
	h         hash.Hash
	finalized bool
}

// NewGenericHashEngine creates a new generic hash engine.
//
// Parameters:
//   - name: The canonical name of the hash algorithm (e.g., "md5")
//   - size: The size of the digest in bytes
//   - factory: A function that creates new hash.Hash instances
//   - initialData: Optional initial data to hash immediately
func NewGenericHashEngine(name string, size int, factory HashFactoryFunc, initialData []byte) (*GenericHashEngine, error) {
	if factory == nil {
		return nil, fmt.Errorf("hash factory for %q must not be nil", name)
	}

	engine := &GenericHashEngine{
		name:    name,
		size:    size,
		factory: factory,
	}
	engine.Reset(initialData)

	return engine, nil
}

// Update appends additional bytes to the data to be hashed.
func (e *GenericHashEngine) Update(data []byte) error {
	if e.finalized {
		return hashengines.ErrFinalized
	}
	if len(data) > 0 {
		// hash.Hash.Write never returns an error per the interface contract
		_, _ = e.h.Write(data)
	}
	return nil
}

// Reset clears the hash state and optionally seeds it with initial data.
func (e *GenericHashEngine) Reset(data []byte) {
	e.h = e.factory()
	e.finalized = false

	if len(data) > 0 {
		_, _ = e.h.Write(data)
	}
}

// Compute finalizes the hash and returns a digests.Digest.
func (e *GenericHashEngine) Compute() (digests.Digest, error) {
	if e.finalized {
		return digests.Digest{}, hashengines.ErrFinalized
	}
	e.finalized = true

	return digests.NewDigest(e.name, e.h.Sum(nil)), nil
}

// DigestName returns the canonical name of the hash algorithm.
func (e *GenericHashEngine) DigestName() string {
	return e.name
}

// DigestSize returns the size, in bytes, of digests produced by this engine.
func (e *GenericHashEngine) DigestSize() int {
	return e.size
}
