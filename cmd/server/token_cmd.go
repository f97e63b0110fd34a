package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jrsteele09/portal-gate/internal/config"
	apperrors "github.com/jrsteele09/portal-gate/internal/errors"
	"github.com/jrsteele09/portal-gate/token"
)

func tokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Sign or inspect session tokens with SESSION_SECRET",
	}
	cmd.AddCommand(tokenSignCmd(), tokenVerifyCmd())
	return cmd
}

func sessionCodec() (*token.Codec, error) {
	secret := config.New().GetSessionSecret()
	if len(secret) == 0 {
		return nil, fmt.Errorf("%w: SESSION_SECRET is not set", apperrors.ErrInvalidConfig)
	}
	return token.NewCodec(secret), nil
}

func tokenSignCmd() *cobra.Command {
	var (
		email string
		ttl   time.Duration
	)
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Mint a session token, e.g. for local testing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			codec, err := sessionCodec()
			if err != nil {
				return err
			}
			signed, err := codec.Sign(token.NewClaims(email, time.Now(), ttl))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), signed)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email claim")
	cmd.Flags().DurationVar(&ttl, "ttl", config.Security{}.GetMaxSessionAge(), "token lifetime")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func tokenVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <token>",
		Short: "Check a session token's signature and print its claims",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			codec, err := sessionCodec()
			if err != nil {
				return err
			}
			claims, err := codec.Verify(args[0])
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(struct {
				token.Claims
				ExpiresAt time.Time `json:"expiresAt"`
				Expired   bool      `json:"expired"`
			}{claims, claims.ExpiresAt().UTC(), claims.Expired(time.Now())}, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}
