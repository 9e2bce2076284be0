// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinedex Contributors

package main

import (
	"github.com/spf13/cobra"
)

// Global flags available to all subcommands.
var configFile string

// NewRootCmd creates the root command for the Cinedex CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cinedex",
		Short: "Cinedex - a film catalog service",
		Long: `Cinedex is a film catalog backend: accounts with JWT bearer auth,
films with community ratings and comments, favorites, and a
password-reset flow over email.`,
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())
	cmd.AddCommand(NewSeedCmd())

	return cmd
}
