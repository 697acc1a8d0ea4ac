// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package session implements the synchronization session controller that sits
// between the presentation layer and the reconciliation engine.
//
// A [Session] drives one profile through
//
//	Idle → Connecting → [AwaitingCredential → Connecting]… → Reconciling →
//	Reviewing → Syncing → Done | Failed
//
// Long-running engine work runs in a background goroutine and reports back
// through the session, which serializes every transition under one mutex.
// When the engine needs a secret, the session raises a [Challenge] on its
// [CredentialChannel]; at most one challenge is pending at any time. The
// detected differences are exposed through a [TableModel] that shares the
// engine's item pointers, so toggling an item's ignore flag in the UI is what
// the engine reads at sync time.
//
// Callers observe progress through an [Observer]. Events are delivered in
// order on a dedicated goroutine and never while the session lock is held.
package session
