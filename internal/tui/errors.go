// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"net"
	"strings"

	"github.com/MKhiriev/go-replica-sync/internal/session"
)

// networkHints are fragments of transport errors that lost their type on the
// way up, e.g. after being flattened into an item failure reason.
var networkHints = []string{
	"connection refused",
	"no such host",
	"network is unreachable",
	"i/o timeout",
}

// humanizeError turns a session failure into text for the result screen and
// the error overlay.
func humanizeError(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, session.ErrUserCancelled) {
		return "Cancelled, nothing was changed"
	}

	var netErr net.Error
	unreachable := errors.Is(err, session.ErrConnection) || errors.As(err, &netErr)
	for _, hint := range networkHints {
		if unreachable {
			break
		}
		unreachable = strings.Contains(strings.ToLower(err.Error()), hint)
	}
	if unreachable {
		return "The replica server is unreachable\n(" + err.Error() + ")"
	}

	return err.Error()
}
