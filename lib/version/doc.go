// Copyright 2026 The Understory CLI Authors
// SPDX-License-Identifier: Apache-2.0

// Package version provides build version information for the understory
// binary.
//
// Three variables are injected at build time via -ldflags -X, for
// example:
//
//	go build -ldflags "-X github.com/understory-cli/understory/lib/version.GitCommit=$(git rev-parse --short HEAD)"
//
// [Version] is set manually for releases. [UserAgent] derives the
// client identifier sent on every outbound request from it.
package version
