// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"encoding/json"
	"fmt"

	"github.com/ava-labs/avalanchego/utils/logging"

	"github.com/ava-labs/hellocounter/consts"
	"github.com/ava-labs/hellocounter/greeter"
	"github.com/ava-labs/hellocounter/pebble"
	"github.com/ava-labs/hellocounter/trace"
)

type Config struct {
	// Program
	Arithmetic greeter.Arithmetic `json:"arithmetic"`

	// Storage
	Pebble pebble.Config `json:"pebble"`

	// Tracing
	Trace trace.Config `json:"trace"`

	// Misc
	LogLevel logging.Level `json:"logLevel"`
}

func New(b []byte) (*Config, error) {
	c := &Config{
		Arithmetic: greeter.Wrapping,
		Pebble:     pebble.NewDefaultConfig(),
		Trace: trace.Config{
			Enabled:         false,
			TraceSampleRate: 1,
			AppName:         consts.Name,
			Agent:           consts.Name,
			Version:         consts.Version.String(),
		},
		LogLevel: logging.Info,
	}

	if len(b) > 0 {
		if err := json.Unmarshal(b, c); err != nil {
			return nil, err
		}
	}

	if !c.Arithmetic.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidArithmetic, c.Arithmetic)
	}
	return c, nil
}
