package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/kvsession/internal/config"
	"github.com/aretw0/kvsession/internal/logging"
	redisadapter "github.com/aretw0/kvsession/pkg/adapters/redis"
	"github.com/aretw0/kvsession/pkg/persistence/middleware"
	"github.com/aretw0/kvsession/pkg/ports"
	"github.com/aretw0/kvsession/pkg/serializer"
	"github.com/aretw0/kvsession/pkg/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// app carries what PersistentPreRunE builds for the subcommands.
type app struct {
	cfg      config.Config
	logger   *slog.Logger
	kv       *redisadapter.KV
	store    ports.SessionStore
	registry *prometheus.Registry
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "kvsession",
		Short:         "Inspect and manage sessions stored in Redis",
		Long:          `kvsession reads, writes, refreshes and removes serialized session records kept in Redis under a key prefix.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.kv != nil {
				return a.kv.Close()
			}
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Path to a YAML config file")
	flags.String("redis-addr", "", "Redis address (host:port)")
	flags.String("redis-password", "", "Redis password")
	flags.Int("redis-db", 0, "Redis database number")
	flags.String("prefix", "", "Key prefix for session records")
	flags.Duration("default-ttl", 0, "Expiry used when no TTL is requested")
	flags.String("log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		newGetCmd(a),
		newSetCmd(a),
		newTouchCmd(a),
		newRmCmd(a),
		newServeCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the CLI and exits non-zero on error.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (a *app) setup(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	applyFlags(cmd, &cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	a.logger = logging.NewWithWriter(cmd.ErrOrStderr(), level)

	a.kv = redisadapter.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)

	opts := []store.Option{
		store.WithPrefix(cfg.Prefix),
		store.WithTTL(cfg.TTL),
		store.WithLogger(a.logger),
	}

	active, fallbacks, err := cfg.Keys()
	if err != nil {
		return err
	}
	if active != nil {
		opts = append(opts, store.WithSerializer(serializer.NewSealed(nil, serializer.SealConfig{
			ActiveKey:    active,
			FallbackKeys: fallbacks,
		})))
	}

	s := store.New(a.kv, opts...)

	a.registry = prometheus.NewRegistry()
	a.store = middleware.Chain(s,
		middleware.NewLoggingMiddleware(a.logger),
		middleware.NewMetricsMiddleware(middleware.NewMetrics(a.registry)),
		middleware.NewTracingMiddleware(nil),
	)
	return nil
}

// applyFlags overrides config values with flags the user set explicitly.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("redis-addr") {
		cfg.Redis.Addr, _ = flags.GetString("redis-addr")
	}
	if flags.Changed("redis-password") {
		cfg.Redis.Password, _ = flags.GetString("redis-password")
	}
	if flags.Changed("redis-db") {
		cfg.Redis.DB, _ = flags.GetInt("redis-db")
	}
	if flags.Changed("prefix") {
		cfg.Prefix, _ = flags.GetString("prefix")
	}
	if flags.Changed("default-ttl") {
		cfg.TTL, _ = flags.GetDuration("default-ttl")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("listen") {
		cfg.Listen, _ = flags.GetString("listen")
	}
}
