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

// Package cli implements the filedigest command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sigstore/filedigest/pkg/checksum"
	"github.com/sigstore/filedigest/pkg/logging"
)

const usage = "usage: filedigest <file_path>"

// ExitCoder is implemented by errors that carry a process exit code.
type ExitCoder interface {
	error
	ExitCode() int
}

// invocationError reports a wrong number of arguments.
type invocationError struct {
	got int
}

func (e *invocationError) Error() string {
	return fmt.Sprintf("%s (expected exactly 1 argument, got %d)", usage, e.got)
}

func (e *invocationError) ExitCode() int {
	return 1
}

func exactlyOneFile(_ *cobra.Command, args []string) error {
	if len(args) != 1 {
		return &invocationError{got: len(args)}
	}
	return nil
}

// New builds the root command. The checksum line goes to the command's
// output writer; diagnostics are left to the caller through the returned
// error.
func New(computer *checksum.Computer) *cobra.Command {
	return &cobra.Command{
		Use:   "filedigest FILE_PATH",
		Short: "Print the Base64-encoded MD5 checksum of a file.",
		Long: `Print the Base64-encoded MD5 checksum of a file.

The file at FILE_PATH is read in 8192-byte chunks and never loaded into memory
as a whole. On success the checksum is printed to standard output and the exit
code is 0. Any failure prints a diagnostic to standard error and exits with 1.`,
		Args:               exactlyOneFile,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			sum, err := computer.Compute(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Checksum: %s\n", sum)
			return err
		},
	}
}

// Run executes the command with args and returns the process exit code.
// Standard output only ever receives the checksum line.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	logger := logging.NewConsoleLogger(stderr, logging.LevelWarn)
	defer func() { _ = logger.Sync() }()

	computer, err := checksum.New(checksum.Options{Logger: logger})
	if err != nil {
		logger.Error("%v", err)
		return 1
	}

	if args == nil {
		// cobra falls back to os.Args when given nil.
		args = []string{}
	}

	cmd := New(computer)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		logger.Error("%v", err)
		return exitCode(err)
	}
	return 0
}

func exitCode(err error) int {
	var ec ExitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	return 1
}
