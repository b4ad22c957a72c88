// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package field describes the typed configuration parameters that modules
// expose. A Model is an ordered set of Fields; the command builder turns each
// Field into a flag.
package field
