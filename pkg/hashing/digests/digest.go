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

// Package digests provides the value type produced by a finalized hash engine.
//
// A Digest pairs the algorithm name with the raw digest bytes. Its fields are
// unexported and every accessor hands out copies, so a Digest never changes
// after it is created.
package digests

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// Digest represents a computed cryptographic hash digest.
type Digest struct {
	algorithm string // Name of the hash algorithm used
	value     []byte // Raw digest bytes
}

// NewDigest creates a new Digest with the specified algorithm and hash value.
//
// The value slice is copied, so later writes to it by the caller do not affect
// the returned Digest.
func NewDigest(algorithm string, value []byte) Digest {
	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)

	return Digest{
		algorithm: algorithm,
		value:     valueCopy,
	}
}

// Algorithm returns the name of the hash algorithm used to compute this digest.
func (d Digest) Algorithm() string {
	return d.algorithm
}

// Value returns a copy of the raw digest bytes.
func (d Digest) Value() []byte {
	valueCopy := make([]byte, len(d.value))
	copy(valueCopy, d.value)
	return valueCopy
}

// Hex returns the lowercase hexadecimal encoding of the digest value.
func (d Digest) Hex() string {
	return hex.EncodeToString(d.value)
}

// Base64 returns the standard, padded Base64 encoding of the digest value
// (RFC 4648 section 4) without line wrapping.
//
// The encoding is a pure function of the digest bytes and can be reversed
// with base64.StdEncoding.DecodeString.
func (d Digest) Base64() string {
	return base64.StdEncoding.EncodeToString(d.value)
}

// Size returns the length in bytes of the digest value.
func (d Digest) Size() int {
	return len(d.value)
}

// String returns "algorithm:hexvalue", e.g. "md5:900150983cd24fb0d6963f7d28e17f72".
func (d Digest) String() string {
	return fmt.Sprintf("%s:%s", d.algorithm, d.Hex())
}

// Equal reports whether both digests carry the same algorithm name and the
// same digest bytes.
func (d Digest) Equal(other Digest) bool {
	if d.algorithm != other.algorithm {
		return false
	}
	return bytes.Equal(d.value, other.value)
}
