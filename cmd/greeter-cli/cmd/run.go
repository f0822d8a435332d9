// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ava-labs/hellocounter/consts"
	"github.com/ava-labs/hellocounter/greeter"
)

type runCmd struct {
	s    *simulator
	plan *Plan

	stdinReader io.Reader
	out         io.Writer
}

func newRunCmd(s *simulator) *cobra.Command {
	r := &runCmd{s: s}
	cmd := &cobra.Command{
		Use:   "run [path]",
		Short: "Run a simulation plan (use - to read from stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r.stdinReader = cmd.InOrStdin()
			r.out = cmd.OutOrStdout()
			if err := r.Init(args[0]); err != nil {
				return err
			}
			if err := r.plan.Verify(); err != nil {
				return err
			}
			return r.Run(cmd.Context())
		},
	}
	return cmd
}

func (c *runCmd) Init(source string) (err error) {
	var planBytes []byte
	if source == "-" {
		planBytes, err = io.ReadAll(c.stdinReader)
	} else {
		planBytes, err = os.ReadFile(source)
	}
	if err != nil {
		return err
	}
	c.plan, err = unmarshalPlan(planBytes)
	return err
}

func (c *runCmd) Run(ctx context.Context) error {
	c.s.log.Info("simulation",
		zap.String("name", c.plan.Name),
		zap.String("plan", c.plan.Description),
	)

	for i, step := range c.plan.Steps {
		c.s.log.Info("simulation",
			zap.Int("step", i),
			zap.String("description", step.Description),
			zap.String("endpoint", string(step.Endpoint)),
			zap.String("method", step.Method),
			zap.String("account", step.Account),
		)

		resp := newResponse(i)
		resp.Result.Account = accountID(step.Account).String()
		counter, err := c.runStep(ctx, &step, resp)
		if err != nil {
			resp.setError(err)
		}
		resp.Result.Timestamp = time.Now().Unix()
		if err := resp.Print(c.out); err != nil {
			return err
		}
		if err := checkRequire(i, step.Require, counter, err); err != nil {
			return err
		}
	}
	return nil
}

func (c *runCmd) runStep(ctx context.Context, step *Step, resp *Response) (uint32, error) {
	switch step.Endpoint {
	case AccountEndpoint:
		owner, err := parseOwner(step.Owner)
		if err != nil {
			return 0, err
		}
		space := uint64(consts.GreetingAccountSize)
		if step.Space != nil {
			space = *step.Space
		}
		if _, err := c.s.createAccount(ctx, step.Account, owner, space); err != nil {
			return 0, err
		}
		resp.Result.Msg = "created account " + step.Account
		return 0, nil
	case ExecuteEndpoint:
		instruction, err := greeter.ParseInstruction(step.Method)
		if err != nil {
			return 0, err
		}
		counter, err := c.s.invoke(ctx, step.Account, instruction)
		if err != nil {
			return 0, err
		}
		resp.setCounter(counter)
		return counter, nil
	case ReadEndpoint:
		counter, err := c.s.readCounter(ctx, step.Account)
		if err != nil {
			return 0, err
		}
		resp.setCounter(counter)
		return counter, nil
	default:
		return 0, ErrInvalidEndpoint
	}
}
