// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"errors"
	"fmt"
	"path"
	"strings"
	"time"
)

// ErrInvalidProfile is returned by [Profile.Validate] when a profile cannot be
// used to open a synchronization session.
var ErrInvalidProfile = errors.New("invalid profile")

// Profile identifies a synchronization job: a pair of replica roots and the
// connection parameters needed to reach them.
//
// A root is either a local directory path or the base URL of a replica server
// (http://host:port or https://host:port).
type Profile struct {
	// Name is the unique profile key used by the profile store.
	Name string `json:"name" toml:"-"`

	// RootA is the first replica root ("left" side in reconciliation items).
	RootA string `json:"root_a" toml:"root_a"`

	// RootB is the second replica root ("right" side in reconciliation items).
	RootB string `json:"root_b" toml:"root_b"`

	// Username is shown in credential prompts for remote roots.
	Username string `json:"username,omitempty" toml:"username,omitempty"`

	// Ignore holds path.Match patterns. A path is ignored when a pattern
	// matches either its full relative path or its base name.
	Ignore []string `json:"ignore,omitempty" toml:"ignore,omitempty"`

	CreatedAt time.Time `json:"created_at" toml:"-"`
	UpdatedAt time.Time `json:"updated_at" toml:"-"`
}

// Roots returns both roots in reconciliation order.
func (p Profile) Roots() [2]string {
	return [2]string{p.RootA, p.RootB}
}

// Validate checks that the profile names two distinct roots and that every
// ignore pattern is well-formed.
func (p Profile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidProfile)
	}
	a, b := strings.TrimSpace(p.RootA), strings.TrimSpace(p.RootB)
	if a == "" || b == "" {
		return fmt.Errorf("%w: both roots are required", ErrInvalidProfile)
	}
	if a == b {
		return fmt.Errorf("%w: roots must differ", ErrInvalidProfile)
	}
	for _, pattern := range p.Ignore {
		if _, err := path.Match(pattern, ""); err != nil {
			return fmt.Errorf("%w: ignore pattern %q: %v", ErrInvalidProfile, pattern, err)
		}
	}
	return nil
}

// IsIgnored reports whether relPath matches one of the profile's ignore
// patterns. Malformed patterns never match.
func (p Profile) IsIgnored(relPath string) bool {
	base := path.Base(relPath)
	for _, pattern := range p.Ignore {
		if ok, _ := path.Match(pattern, relPath); ok {
			return true
		}
		if ok, _ := path.Match(pattern, base); ok {
			return true
		}
	}
	return false
}
