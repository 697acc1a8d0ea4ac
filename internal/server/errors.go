// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

// errNoServersAreCreated is returned when no transport has a listen address.
var errNoServersAreCreated = errors.New("replica server has nothing to listen on")
