// file: cmd/root.go
// version: 2.0.0
// guid: 6a7b8c9d-0e1f-2a3b-4c5d-6e7f8a9b0c1d

package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/jdfalk/user-service/internal/auth"
	"github.com/jdfalk/user-service/internal/cache"
	"github.com/jdfalk/user-service/internal/config"
	"github.com/jdfalk/user-service/internal/database"
	"github.com/jdfalk/user-service/internal/models"
	"github.com/jdfalk/user-service/internal/server"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// version is overridden at build time with -ldflags "-X .../cmd.version=..."
var version = "dev"

var cfgFile string

// settings holds every configuration source: defaults, file, env and flags
var settings = newSettings()

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "user-service",
	Short: "In-memory user CRUD service",
	Long: `User Service exposes create, read, update and delete operations on
user records over HTTP. Records live in memory for the lifetime of the
process and the full list is served from a short-lived cache.`,
	SilenceUsage: true,
}

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Start the HTTP server and serve the /users API until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		srv, err := newServer(cfg)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Fprintf(cmd.OutOrStdout(), "Starting user-service %s on %s\n", version, cfg.Server.Addr())
		return srv.Run(ctx)
	},
}

// tokenCmd mints a bearer token for manual testing
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Print a signed bearer token",
	Long:  `Print an HS256 bearer token signed with the configured secret, issuer and audience.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		subject, _ := cmd.Flags().GetString("subject")
		issuer, err := newIssuer(cfg)
		if err != nil {
			return err
		}
		token, err := issuer.Issue(subject)
		if err != nil {
			return fmt.Errorf("failed to issue token: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

// versionCmd prints the build version
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "user-service %s\n", version)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.user-service.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "minimum log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("secret", "", "HS256 signing secret for bearer tokens")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(diagnosticsCmd)

	// Add serve command specific flags
	serveCmd.Flags().String("port", "8080", "port to run the server on")
	serveCmd.Flags().String("host", "localhost", "host to bind the server to")
	serveCmd.Flags().Duration("read-timeout", 0, "read timeout (e.g. 15s, 1m)")
	serveCmd.Flags().Duration("write-timeout", 0, "write timeout (e.g. 15s, 1m)")
	serveCmd.Flags().Duration("idle-timeout", 0, "idle timeout (e.g. 60s, 2m)")
	serveCmd.Flags().Duration("cache-ttl", 0, "sliding expiration of the user list cache")
	serveCmd.Flags().Bool("require-auth", false, "reject /users requests without a valid bearer token")
	serveCmd.Flags().Int("rate-limit", 0, "requests per minute allowed per client IP (0 disables)")

	tokenCmd.Flags().String("subject", "", "subject (sub claim) of the token")
	tokenCmd.Flags().Duration("ttl", 0, "token lifetime (e.g. 1h)")
	_ = tokenCmd.MarkFlagRequired("subject")

	bindFlags(settings)
}

func newSettings() *viper.Viper {
	v := viper.New()
	config.SetDefaults(v)
	config.BindEnv(v)
	return v
}

// bindFlags maps command flags onto config keys. Viper only prefers a bound
// flag over file and env values when the flag was set explicitly.
func bindFlags(v *viper.Viper) {
	bindings := []struct {
		key  string
		flag *pflag.Flag
	}{
		{"log.level", rootCmd.PersistentFlags().Lookup("log-level")},
		{"auth.secret", rootCmd.PersistentFlags().Lookup("secret")},
		{"server.port", serveCmd.Flags().Lookup("port")},
		{"server.host", serveCmd.Flags().Lookup("host")},
		{"server.read_timeout", serveCmd.Flags().Lookup("read-timeout")},
		{"server.write_timeout", serveCmd.Flags().Lookup("write-timeout")},
		{"server.idle_timeout", serveCmd.Flags().Lookup("idle-timeout")},
		{"cache.ttl", serveCmd.Flags().Lookup("cache-ttl")},
		{"auth.enforce", serveCmd.Flags().Lookup("require-auth")},
		{"rate_limit.requests_per_minute", serveCmd.Flags().Lookup("rate-limit")},
		{"auth.token_ttl", tokenCmd.Flags().Lookup("ttl")},
	}
	for _, b := range bindings {
		_ = v.BindPFlag(b.key, b.flag)
	}
}

func initConfig() {
	if cfgFile != "" {
		settings.SetConfigFile(cfgFile)
		return
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	settings.AddConfigPath(home)
	settings.SetConfigType("yaml")
	settings.SetConfigName(".user-service")
}

// loadConfig reads the config file, if any, and resolves the final Config.
// A missing default config file is not an error; a missing --config file is.
func loadConfig() (config.Config, error) {
	if err := settings.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return config.Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		fmt.Fprintln(os.Stderr, "Using config file:", settings.ConfigFileUsed())
	}

	cfg, err := config.Load(settings)
	if err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newIssuer(cfg config.Config) (*auth.Issuer, error) {
	issuer, err := auth.NewIssuer(cfg.Auth.Secret, cfg.Auth.Issuer, cfg.Auth.Audience, cfg.Auth.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token issuer: %w", err)
	}
	return issuer, nil
}

// newServer builds the store, cache and token verifier and injects them
func newServer(cfg config.Config) (*server.Server, error) {
	issuer, err := newIssuer(cfg)
	if err != nil {
		return nil, err
	}

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	return server.New(cfg, server.Deps{
		Store:    database.NewMemoryStore(),
		Cache:    cache.New[models.User](cfg.Cache.TTL),
		Verifier: issuer,
		Logger:   server.NewLogger(server.ParseLogLevel(cfg.LogLevel)),
	}), nil
}
