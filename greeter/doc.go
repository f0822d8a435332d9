// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package greeter implements the hello world counter program. The program
// keeps a single uint32 counter in the first account it is handed and
// increments, decrements or resets it depending on the instruction byte.
package greeter
