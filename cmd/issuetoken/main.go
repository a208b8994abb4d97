package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"IssueStore/pkg/kit"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		loader string
		role   string
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "issuetoken",
		Short: "Mint a bearer token for the issues service write endpoints",
		Long: `Mint an HS256 token signed with LOADER_SECRET. The issues service accepts
tokens with role "loader" on POST /issues and POST /articles.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			secret := os.Getenv("LOADER_SECRET")
			if secret == "" {
				return errors.New("LOADER_SECRET is not set")
			}
			if loader == "" {
				return errors.New("--loader is required")
			}

			tok, err := kit.NewTokenMaker(secret).New(loader, role, ttl)
			if err != nil {
				return fmt.Errorf("sign token: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), tok)
			return err
		},
	}

	cmd.Flags().StringVarP(&loader, "loader", "l", "", "name of the loader the token is issued to")
	cmd.Flags().StringVar(&role, "role", kit.RoleLoader, "role claim")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")

	return cmd
}
