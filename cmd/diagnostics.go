// file: cmd/diagnostics.go
// version: 2.0.0
// guid: c8f6a0d4-2a8b-48cf-9d08-02cc9915d9fc

package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jdfalk/user-service/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	diagnosticsCmd = &cobra.Command{
		Use:   "diagnostics",
		Short: "Debugging helpers",
		Long:  "Diagnostic utilities for inspecting configuration and bearer tokens.",
	}

	showConfigCmd = &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			showSecret, _ := cmd.Flags().GetBool("show-secret")
			return writeConfig(cmd.OutOrStdout(), cfg, showSecret)
		},
	}

	verifyTokenCmd = &cobra.Command{
		Use:   "verify-token <token>",
		Short: "Verify a bearer token against the configured secret",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runVerifyToken(cmd.OutOrStdout(), cfg, args[0])
		},
	}
)

func init() {
	showConfigCmd.Flags().Bool("show-secret", false, "Print the signing secret instead of masking it")

	diagnosticsCmd.AddCommand(showConfigCmd)
	diagnosticsCmd.AddCommand(verifyTokenCmd)
}

// configView is the YAML shape of a Config, keyed like the config file
func configView(cfg config.Config, showSecret bool) map[string]any {
	secret := cfg.Auth.Secret
	if !showSecret {
		secret = maskSecret(secret)
	}
	return map[string]any{
		"server": map[string]any{
			"host":             cfg.Server.Host,
			"port":             cfg.Server.Port,
			"read_timeout":     cfg.Server.ReadTimeout.String(),
			"write_timeout":    cfg.Server.WriteTimeout.String(),
			"idle_timeout":     cfg.Server.IdleTimeout.String(),
			"shutdown_timeout": cfg.Server.ShutdownTimeout.String(),
		},
		"cache": map[string]any{
			"ttl": cfg.Cache.TTL.String(),
		},
		"auth": map[string]any{
			"secret":    secret,
			"issuer":    cfg.Auth.Issuer,
			"audience":  cfg.Auth.Audience,
			"enforce":   cfg.Auth.Enforce,
			"token_ttl": cfg.Auth.TokenTTL.String(),
		},
		"rate_limit": map[string]any{
			"requests_per_minute": cfg.RateLimit.RequestsPerMinute,
			"burst":               cfg.RateLimit.Burst,
		},
		"limits": map[string]any{
			"max_body_bytes": cfg.Limits.MaxBodyBytes,
		},
		"log": map[string]any{
			"level": cfg.LogLevel,
		},
	}
}

func writeConfig(w io.Writer, cfg config.Config, showSecret bool) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(configView(cfg, showSecret)); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return enc.Close()
}

func maskSecret(secret string) string {
	if len(secret) <= 4 {
		return strings.Repeat("*", len(secret))
	}
	return secret[:2] + strings.Repeat("*", len(secret)-2)
}

func runVerifyToken(w io.Writer, cfg config.Config, token string) error {
	issuer, err := newIssuer(cfg)
	if err != nil {
		return err
	}

	claims, err := issuer.Verify(token)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "valid token\n")
	fmt.Fprintf(w, "  subject:  %s\n", claims.Subject)
	fmt.Fprintf(w, "  token id: %s\n", claims.ID)
	if claims.ExpiresAt != nil {
		fmt.Fprintf(w, "  expires:  %s (in %s)\n",
			claims.ExpiresAt.Time.UTC().Format(time.RFC3339),
			time.Until(claims.ExpiresAt.Time).Round(time.Second))
	}
	return nil
}
