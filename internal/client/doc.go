// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the vault client runtime.
//
// It wires the configured blob store, the vault services, the unlock queue
// and one session into an [App] the terminal commands drive. Failures of
// user actions are both returned and posted to an [ErrorChannel].
package client
