// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "context"

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run executes the subcommand named by args[0] with the remaining
	// arguments as its flags, and returns when the command completes.
	Run(ctx context.Context, args []string) error
}
