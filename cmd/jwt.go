package main

import (
	"context"
	"fmt"
	"portal/internal/api"
	"portal/internal/config"
	"portal/pkg/domain"
	"portal/pkg/logger"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// JWTCommand constructs the 'jwt' subcommand that generates a signed RS256 JWT
// for a given subject (user ID), role and TTL using the configured private key.
func JWTCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jwt",
		Short: "Generates JWT token for given user ID and role",
		Run: func(cmd *cobra.Command, args []string) {
			subject, _ := cmd.Flags().GetString("subject")
			role, _ := cmd.Flags().GetString("role")
			TTL, _ := cmd.Flags().GetDuration("ttl")

			if !domain.Role(role).Valid() {
				logger.Fatal(context.Background(), "unknown role", zap.String("role", role))
			}

			key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(cfg.JWT.PrivateKey))
			if err != nil {
				logger.Fatal(context.Background(), "could not parse RSA private key", zap.Error(err))
			}

			claims := api.Claims{
				RegisteredClaims: jwt.RegisteredClaims{
					Subject:   subject,
					ExpiresAt: jwt.NewNumericDate(time.Now().Add(TTL)),
					IssuedAt:  jwt.NewNumericDate(time.Now()),
					NotBefore: jwt.NewNumericDate(time.Now()),
				},
				Role: role,
			}
			token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
			signed, err := token.SignedString(key)
			if err != nil {
				logger.Fatal(context.Background(), "could not sign JWT", zap.Error(err))
			}

			fmt.Println(signed) //nolint: forbidigo
		},
	}

	cmd.Flags().String("subject", "", "JWT subject (e.g., user ID)")
	cmd.Flags().String("role", string(domain.RoleStudent), "Role claim (student, institute, company, admin)")
	cmd.Flags().Duration("ttl", 24*time.Hour, "Token TTL (e.g., 30s, 15m, 1h)")
	_ = cmd.MarkFlagRequired("subject")

	return cmd
}
