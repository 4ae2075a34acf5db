// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the go-chat-vault command-line client.
//
// The client is stateless: it keeps nothing on disk, and authenticated
// subcommands take the bearer token through their -token flag. Results are
// printed to the configured output as indented JSON; diagnostics go to the
// logger.
//
// Subcommands:
//
//	register -username u -email e -password p [-display-name d]
//	login    -username u -password p
//	me       -token t
//	list     -token t
//	update   -token t [-email e] [-display-name d] [-password p]
//	whoami   -token t
//	version
package client
