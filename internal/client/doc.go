// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the command-line client application runtime.
//
// It maps subcommands onto [adapter.ServerAdapter] calls, persists the bearer
// token between invocations and prints results as indented JSON.
package client
