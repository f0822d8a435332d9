// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/ava-labs/hellocounter/greeter"
)

func newInvokeCmd(s *simulator) *cobra.Command {
	return &cobra.Command{
		Use:       "invoke [increment|decrement|reset] [name]",
		Short:     "Invoke the greeter program on a named account",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"increment", "decrement", "reset"},
		RunE: func(cmd *cobra.Command, args []string) error {
			instruction, err := greeter.ParseInstruction(args[0])
			if err != nil {
				return err
			}
			counter, err := s.invoke(cmd.Context(), args[1], instruction)
			if err != nil {
				return err
			}

			resp := newResponse(0)
			resp.Result.Account = accountID(args[1]).String()
			resp.setCounter(counter)
			resp.Result.Timestamp = time.Now().Unix()
			return resp.Print(cmd.OutOrStdout())
		},
	}
}

func newReadCmd(s *simulator) *cobra.Command {
	return &cobra.Command{
		Use:   "read [name]",
		Short: "Print the counter held by a named account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			counter, err := s.readCounter(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			resp := newResponse(0)
			resp.Result.Account = accountID(args[0]).String()
			resp.setCounter(counter)
			resp.Result.Timestamp = time.Now().Unix()
			return resp.Print(cmd.OutOrStdout())
		},
	}
}
