package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-planner/infrastruture/token"
	"github.com/spf13/cobra"
)

var (
	tokenSubject string
	tokenTTL     time.Duration

	tokenCmd = &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for the planning API",
		RunE:  runToken,
	}
)

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "planner-client", "client the token is issued to")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "token lifetime")
}

func runToken(cmd *cobra.Command, args []string) error {
	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET is not set")
	}

	tokenizer := token.NewJwtService(cfg.JWTSecret, cfg.JWTIssuer)
	signed, err := tokenizer.Generate(tokenSubject, nil, tokenTTL)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), signed)
	return nil
}
