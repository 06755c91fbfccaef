// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the diary sync client runtime.
//
// It either performs a single sync run and exits, or keeps the periodic sync
// job running until the process receives a stop signal.
package client
