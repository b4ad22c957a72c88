// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package module defines the descriptors that feature modules register with
// the command builder. A module is either Flat (its own fields) or Compound
// (a set of submodules), decided when it is constructed.
package module
