// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ava-labs/hellocounter/consts"
)

func newAccountCmd(s *simulator) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage counter accounts",
	}
	cmd.AddCommand(
		newAccountCreateCmd(s),
		newAccountShowCmd(s),
	)
	return cmd
}

func newAccountCreateCmd(s *simulator) *cobra.Command {
	var (
		owner string
		space uint64
	)
	cmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Allocate a zeroed account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ownerID, err := parseOwner(owner)
			if err != nil {
				return err
			}
			key, err := s.createAccount(cmd.Context(), args[0], ownerID, space)
			if err != nil {
				return err
			}
			s.log.Debug("account created",
				zap.String("name", args[0]),
				zap.Stringer("key", key),
			)

			resp := newResponse(0)
			resp.Result.Account = key.String()
			resp.Result.Msg = fmt.Sprintf("created account %s owned by %s", args[0], ownerID)
			resp.Result.Timestamp = time.Now().Unix()
			return resp.Print(cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&owner, "owner", "", "owner program id (default greeter program)")
	cmd.Flags().Uint64Var(&space, "space", consts.GreetingAccountSize, "account data size in bytes")
	return cmd
}

func newAccountShowCmd(s *simulator) *cobra.Command {
	return &cobra.Command{
		Use:   "show [name]",
		Short: "Print the stored account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := accountID(args[0])
			account, err := s.rt.GetAccount(cmd.Context(), key)
			if err != nil {
				return err
			}

			resp := newResponse(0)
			resp.Result.Account = key.String()
			resp.Result.Data = account.Data
			resp.Result.Msg = "owner " + account.Owner.String()
			resp.Result.Timestamp = time.Now().Unix()
			return resp.Print(cmd.OutOrStdout())
		},
	}
}
