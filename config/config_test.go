// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"testing"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/hellocounter/greeter"
	"github.com/ava-labs/hellocounter/pebble"
)

func TestDefaults(t *testing.T) {
	require := require.New(t)

	c, err := New(nil)
	require.NoError(err)
	require.Equal(greeter.Wrapping, c.Arithmetic)
	require.Equal(pebble.NewDefaultConfig(), c.Pebble)
	require.False(c.Trace.Enabled)
	require.Equal(logging.Info, c.LogLevel)
}

func TestOverrides(t *testing.T) {
	require := require.New(t)

	c, err := New([]byte(`{
		"arithmetic": "checked",
		"logLevel": "debug",
		"pebble": {"sync": false},
		"trace": {"enabled": true, "traceSampleRate": 0.5}
	}`))
	require.NoError(err)
	require.Equal(greeter.Checked, c.Arithmetic)
	require.Equal(logging.Debug, c.LogLevel)
	require.False(c.Pebble.Sync)
	require.Equal(pebble.NewDefaultConfig().CacheSize, c.Pebble.CacheSize)
	require.True(c.Trace.Enabled)
	require.Equal(0.5, c.Trace.TraceSampleRate)
	require.Equal("greeter", c.Trace.AppName)
}

func TestInvalid(t *testing.T) {
	require := require.New(t)

	_, err := New([]byte(`{"arithmetic": "saturating"}`))
	require.ErrorIs(err, ErrInvalidArithmetic)

	_, err = New([]byte(`{`))
	require.Error(err)
}
