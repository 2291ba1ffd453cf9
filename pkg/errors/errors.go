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

// Package errors defines the failure signal returned by checksum computation.
//
// Every failure to open or read the input file surfaces as a *ChecksumError.
// All of them match ErrChecksumFailed under errors.Is; the Kind and the
// wrapped Cause only add diagnostic detail.
package errors

import (
	"errors"
	"fmt"
)

// ErrChecksumFailed is the uniform failure signal of a checksum computation.
var ErrChecksumFailed = errors.New("checksum failed")

// ErrorKind classifies where a checksum computation failed.
type ErrorKind int

const (
	// KindAccess indicates the path could not be opened for reading: it does
	// not exist, it is not a regular file, or permission was denied.
	KindAccess ErrorKind = iota + 1

	// KindIO indicates a read failed after the file was opened.
	KindIO
)

// String returns the string representation of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case KindAccess:
		return "access"
	case KindIO:
		return "io"
	default:
		return "unknown"
	}
}

// ChecksumError carries the uniform checksum failure together with the path
// and the underlying cause.
type ChecksumError struct {
	Kind  ErrorKind
	Path  string
	Cause error
}

// Error implements the error interface.
func (e *ChecksumError) Error() string {
	msg := ErrChecksumFailed.Error()
	if e.Path != "" {
		msg = fmt.Sprintf("%s for file %s", msg, e.Path)
	}
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, msg, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, msg)
}

// Unwrap returns the underlying cause for errors.Is and errors.As support.
func (e *ChecksumError) Unwrap() error {
	return e.Cause
}

// Is makes every ChecksumError match ErrChecksumFailed.
func (e *ChecksumError) Is(target error) bool {
	return target == ErrChecksumFailed
}

// ExitCode returns the process exit code for this error. All checksum
// failures share a single exit code.
func (e *ChecksumError) ExitCode() int {
	return 1
}

// NewAccessError reports that path could not be opened for reading.
func NewAccessError(path string, cause error) *ChecksumError {
	return &ChecksumError{Kind: KindAccess, Path: path, Cause: cause}
}

// NewIOError reports that reading path failed after it was opened.
func NewIOError(path string, cause error) *ChecksumError {
	return &ChecksumError{Kind: KindIO, Path: path, Cause: cause}
}

// IsChecksumError checks if a given error is, or wraps, a ChecksumError.
func IsChecksumError(err error) bool {
	var ce *ChecksumError
	return errors.As(err, &ce)
}

// AsChecksumError attempts to extract a ChecksumError from a given error.
func AsChecksumError(err error) *ChecksumError {
	var ce *ChecksumError
	if errors.As(err, &ce) {
		return ce
	}
	return nil
}
