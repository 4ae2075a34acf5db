// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

// errNoServersAreCreated is returned by NewServer when the handler set has
// no HTTP router to serve.
var errNoServersAreCreated = errors.New("no servers are created: http handler is missing")
