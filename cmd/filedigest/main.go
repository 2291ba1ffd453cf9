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

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sigstore/filedigest/cmd/filedigest/cli"
	"github.com/sigstore/filedigest/pkg/tracing"
)

func main() {
	if err := tracing.InitFromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "tracing disabled: %v\n", err)
	}

	code := cli.Run(context.Background(), os.Args[1:], os.Stdout, os.Stderr)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	_ = tracing.Shutdown(ctx)
	cancel()

	os.Exit(code)
}
