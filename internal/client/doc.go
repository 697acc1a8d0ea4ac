// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client wires the synchronizer client: configuration, the profile
// and archive store, the engine and the sessions driving it.
//
// Two frontends drive sessions. The terminal UI lives in package tui; the
// headless [Headless] frontend runs one profile from the command line,
// asking for passwords and confirmation through a [Prompter].
package client
