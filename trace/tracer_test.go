// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package trace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDisabledTracer(t *testing.T) {
	require := require.New(t)

	tracer, err := New(&Config{AppName: "greeter"})
	require.NoError(err)

	_, span := tracer.Start(context.Background(), "Runtime.Invoke")
	require.False(span.SpanContext().IsSampled())
	span.End()
	require.NoError(tracer.Close())
}

func TestEnabledTracer(t *testing.T) {
	require := require.New(t)

	tracer, err := New(&Config{
		Enabled:         true,
		TraceSampleRate: 1,
		AppName:         "greeter",
		Agent:           "greeter-test",
		Version:         "v0.0.1",
	})
	require.NoError(err)

	_, span := tracer.Start(context.Background(), "Runtime.Invoke")
	require.True(span.SpanContext().IsSampled())
	span.End()
}
