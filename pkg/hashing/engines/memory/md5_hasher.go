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
	"crypto/md5"
	"hash"
)

// MD5Name is the digest name reported by the MD5 engine.
const MD5Name = "md5"

// MD5Engine is a GenericHashEngine configured for MD5.
type MD5Engine = GenericHashEngine

// NewMD5Engine creates a new MD5 engine.
// If initialData is non-empty, it is hashed immediately.
func NewMD5Engine(initialData []byte) *MD5Engine {
	// The factory is non-nil, so construction cannot fail.
	e, _ := NewGenericHashEngine(MD5Name, md5.Size, func() hash.Hash { return md5.New() }, initialData)
	return e
}
