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
	"crypto/md5"
	"encoding/hex"
	"errors"
	"io/fs"
	"os"
	"testing"

	"github.com/spf13/afero"

	fderrors "github.com/sigstore/filedigest/pkg/errors"
	hashengines "github.com/sigstore/filedigest/pkg/hashing/engines"
	"github.com/sigstore/filedigest/pkg/hashing/engines/memory"
)

// patterned returns n bytes that differ across chunk boundaries.
func patterned(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i*31 + i/251)
	}
	return b
}

func writeFile(t *testing.T, fsys afero.Fs, path string, data []byte) {
	t.Helper()
	if err := afero.WriteFile(fsys, path, data, 0o644); err != nil {
		t.Fatalf("WriteFile(%q) error = %v", path, err)
	}
}

func hashWith(t *testing.T, fsys afero.Fs, path string, chunkSize int) (string, *SimpleFileHasher) {
	t.Helper()
	h, err := NewSimpleFileHasher(fsys, path, memory.NewMD5Engine(nil), chunkSize)
	if err != nil {
		t.Fatalf("NewSimpleFileHasher() error = %v", err)
	}
	d, err := h.Compute()
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	return d.Hex(), h
}

func TestNewSimpleFileHasher_Validation(t *testing.T) {
	fsys := afero.NewMemMapFs()
	engine := memory.NewMD5Engine(nil)

	tests := []struct {
		name      string
		path      string
		chunkSize int
		engine    hashengines.StreamingHashEngine
		wantErr   bool
	}{
		{name: "valid", path: "f", chunkSize: 16, engine: engine},
		{name: "zero chunk size uses default", path: "f", chunkSize: 0, engine: engine},
		{name: "negative chunk size", path: "f", chunkSize: -1, engine: engine, wantErr: true},
		{name: "empty path", path: "", chunkSize: 16, engine: engine, wantErr: true},
		{name: "nil engine", path: "f", chunkSize: 16, engine: nil, wantErr: true},
		{name: "nil md5 engine pointer", path: "f", chunkSize: 16, engine: (*memory.MD5Engine)(nil), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := NewSimpleFileHasher(fsys, tt.path, tt.engine, tt.chunkSize)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewSimpleFileHasher() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && tt.chunkSize == 0 && h.ChunkSize() != DefaultChunkSize {
				t.Errorf("ChunkSize() = %d, want %d", h.ChunkSize(), DefaultChunkSize)
			}
		})
	}
}

func TestSimpleFileHasher_KnownVectors(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "/abc.txt", []byte("abc"))
	writeFile(t, fsys, "/empty.txt", nil)

	tests := []struct {
		path string
		want string
	}{
		{"/abc.txt", "900150983cd24fb0d6963f7d28e17f72"},
		{"/empty.txt", "d41d8cd98f00b204e9800998ecf8427e"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, _ := hashWith(t, fsys, tt.path, DefaultChunkSize)
			if got != tt.want {
				t.Errorf("Compute() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSimpleFileHasher_ChunkBoundaries(t *testing.T) {
	fsys := afero.NewMemMapFs()
	data := patterned(DefaultChunkSize*3 + 5)
	writeFile(t, fsys, "/large.bin", data)

	sum := md5.Sum(data)
	want := hex.EncodeToString(sum[:])

	got, h := hashWith(t, fsys, "/large.bin", DefaultChunkSize)
	if got != want {
		t.Errorf("Compute() = %q, want %q", got, want)
	}
	if h.BytesRead() != int64(len(data)) {
		t.Errorf("BytesRead() = %d, want %d", h.BytesRead(), len(data))
	}
	if h.Chunks() != 4 {
		t.Errorf("Chunks() = %d, want 4", h.Chunks())
	}
}

func TestSimpleFileHasher_ChunkSizeDoesNotChangeDigest(t *testing.T) {
	fsys := afero.NewMemMapFs()
	data := patterned(DefaultChunkSize*2 + 123)
	writeFile(t, fsys, "/data.bin", data)

	want, _ := hashWith(t, fsys, "/data.bin", DefaultChunkSize)
	for _, size := range []int{1, 7, 4096, DefaultChunkSize, 1 << 20} {
		got, _ := hashWith(t, fsys, "/data.bin", size)
		if got != want {
			t.Errorf("chunk size %d: Compute() = %q, want %q", size, got, want)
		}
	}
}

func TestSimpleFileHasher_RepeatedCompute(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "/abc.txt", []byte("abc"))

	h, err := NewSimpleFileHasher(fsys, "/abc.txt", memory.NewMD5Engine(nil), 0)
	if err != nil {
		t.Fatalf("NewSimpleFileHasher() error = %v", err)
	}
	first, err := h.Compute()
	if err != nil {
		t.Fatalf("first Compute() error = %v", err)
	}
	second, err := h.Compute()
	if err != nil {
		t.Fatalf("second Compute() error = %v", err)
	}
	if !first.Equal(second) {
		t.Errorf("Compute() not deterministic: %s != %s", first, second)
	}

	writeFile(t, fsys, "/abc.txt", []byte("abd"))
	third, err := h.Compute()
	if err != nil {
		t.Fatalf("Compute() after rewrite error = %v", err)
	}
	if third.Equal(first) {
		t.Error("different contents produced the same digest")
	}
}

func TestSimpleFileHasher_AccessErrors(t *testing.T) {
	base := afero.NewMemMapFs()
	if err := base.MkdirAll("/dir", 0o755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	writeFile(t, base, "/locked.bin", []byte("secret"))

	tests := []struct {
		name      string
		fs        afero.Fs
		path      string
		wantCause error
	}{
		{name: "missing", fs: base, path: "/missing.bin", wantCause: fs.ErrNotExist},
		{name: "directory", fs: base, path: "/dir"},
		{
			name:      "permission denied",
			fs:        &faultyFs{Fs: base, openErr: os.ErrPermission},
			path:      "/locked.bin",
			wantCause: fs.ErrPermission,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := NewSimpleFileHasher(tt.fs, tt.path, memory.NewMD5Engine(nil), 0)
			if err != nil {
				t.Fatalf("NewSimpleFileHasher() error = %v", err)
			}
			_, err = h.Compute()
			if !errors.Is(err, fderrors.ErrChecksumFailed) {
				t.Fatalf("Compute() error = %v, want ErrChecksumFailed", err)
			}
			if ce := fderrors.AsChecksumError(err); ce == nil || ce.Kind != fderrors.KindAccess {
				t.Errorf("Compute() error kind = %v, want access", ce)
			}
			if tt.wantCause != nil && !errors.Is(err, tt.wantCause) {
				t.Errorf("Compute() error = %v, want cause %v", err, tt.wantCause)
			}
		})
	}
}

func TestSimpleFileHasher_ReadErrorClosesFile(t *testing.T) {
	base := afero.NewMemMapFs()
	writeFile(t, base, "/flaky.bin", patterned(DefaultChunkSize*2))

	readErr := errors.New("device error")
	fsys := &faultyFs{Fs: base, failAfter: DefaultChunkSize, readErr: readErr}

	h, err := NewSimpleFileHasher(fsys, "/flaky.bin", memory.NewMD5Engine(nil), 0)
	if err != nil {
		t.Fatalf("NewSimpleFileHasher() error = %v", err)
	}

	d, err := h.Compute()
	if err == nil {
		t.Fatalf("Compute() = %s, want error", d)
	}
	if d.Size() != 0 {
		t.Errorf("Compute() returned partial digest %s", d)
	}
	ce := fderrors.AsChecksumError(err)
	if ce == nil || ce.Kind != fderrors.KindIO {
		t.Errorf("Compute() error = %v, want io kind", err)
	}
	if !errors.Is(err, readErr) {
		t.Errorf("Compute() error = %v, want cause %v", err, readErr)
	}
	if fsys.opened != 1 || fsys.closed != 1 {
		t.Errorf("opened %d, closed %d files, want 1 and 1", fsys.opened, fsys.closed)
	}
}

func TestSimpleFileHasher_ClosesFileOnSuccess(t *testing.T) {
	base := afero.NewMemMapFs()
	writeFile(t, base, "/ok.bin", []byte("abc"))
	fsys := &faultyFs{Fs: base}

	if _, h := hashWith(t, fsys, "/ok.bin", 2); h.Chunks() != 2 {
		t.Errorf("Chunks() = %d, want 2", h.Chunks())
	}
	if fsys.opened != 1 || fsys.closed != 1 {
		t.Errorf("opened %d, closed %d files, want 1 and 1", fsys.opened, fsys.closed)
	}
}

// faultyFs wraps an afero.Fs to inject open and read failures and to count
// open/close calls.
type faultyFs struct {
	afero.Fs
	openErr   error
	readErr   error
	failAfter int

	opened, closed int
}

func (f *faultyFs) Open(name string) (afero.File, error) {
	if f.openErr != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: f.openErr}
	}
	file, err := f.Fs.Open(name)
	if err != nil {
		return nil, err
	}
	f.opened++
	return &faultyFile{File: file, owner: f, remaining: f.failAfter}, nil
}

type faultyFile struct {
	afero.File
	owner     *faultyFs
	remaining int
}

func (f *faultyFile) Read(p []byte) (int, error) {
	if f.owner.readErr == nil {
		return f.File.Read(p)
	}
	if f.remaining <= 0 {
		return 0, f.owner.readErr
	}
	if len(p) > f.remaining {
		p = p[:f.remaining]
	}
	n, err := f.File.Read(p)
	f.remaining -= n
	return n, err
}

func (f *faultyFile) Close() error {
	f.owner.closed++
	return f.File.Close()
}
