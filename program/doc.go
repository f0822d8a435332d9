// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package program defines the boundary between a host runtime and the
// programs it executes: the accounts handed to a program, the errors a
// program may return and the entrypoint every program implements.
package program
