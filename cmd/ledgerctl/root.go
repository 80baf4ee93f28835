package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/envelope-ledger/backend/config"
	"github.com/envelope-ledger/backend/internal/application/adapter"
	"github.com/envelope-ledger/backend/internal/infra/db"
	"github.com/envelope-ledger/backend/internal/integration/cache"
	"github.com/envelope-ledger/backend/internal/integration/persistence"
)

// cli holds the state shared by every subcommand of one root command.
type cli struct {
	v       *viper.Viper
	cfgFile string
}

func newRootCmd() *cobra.Command {
	c := &cli{v: viper.New()}

	root := &cobra.Command{
		Use:   "ledgerctl",
		Short: "Operate an envelope budget ledger",
		Long: `ledgerctl works directly against the ledger store used by the API server.

It can migrate and seed the schema, split income across categories and
report on or export the transaction history.`,
		SilenceUsage:      true,
		PersistentPreRunE: c.initConfig,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.cfgFile, "config", "", "config file (default: ./ledgerctl.yaml)")
	flags.String("db-driver", "", "database driver (sqlite, postgres)")
	flags.String("db-url", "", "database URL or SQLite DSN")
	flags.String("log-format", "text", "log format (text, json)")
	flags.BoolP("verbose", "v", false, "enable debug logging")

	_ = c.v.BindPFlag("database.driver", flags.Lookup("db-driver"))
	_ = c.v.BindPFlag("database.url", flags.Lookup("db-url"))
	_ = c.v.BindPFlag("log.format", flags.Lookup("log-format"))
	_ = c.v.BindPFlag("verbose", flags.Lookup("verbose"))

	root.AddCommand(c.migrateCmd())
	root.AddCommand(c.categoriesCmd())
	root.AddCommand(c.splitCmd())
	root.AddCommand(c.summaryCmd())
	root.AddCommand(c.exportCmd())

	return root
}

func (c *cli) initConfig(cmd *cobra.Command, _ []string) error {
	if c.cfgFile != "" {
		c.v.SetConfigFile(c.cfgFile)
	} else {
		c.v.AddConfigPath(".")
		c.v.SetConfigName("ledgerctl")
		c.v.SetConfigType("yaml")
	}

	c.v.SetEnvPrefix("LEDGER")
	c.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	c.v.AutomaticEnv()

	if err := c.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	return setupLogging(cmd.ErrOrStderr(), c.v.GetString("log.format"), c.v.GetBool("verbose"))
}

func setupLogging(w io.Writer, format string, verbose bool) error {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if verbose {
		opts.Level = slog.LevelDebug
	}

	var handler slog.Handler
	switch format {
	case "text", "":
		handler = slog.NewTextHandler(w, opts)
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		return fmt.Errorf("invalid log format: %s", format)
	}

	slog.SetDefault(slog.New(handler))
	return nil
}

// config layers the file, environment and flag values over config.Load.
func (c *cli) config() *config.Config {
	cfg := config.Load()
	if driver := c.v.GetString("database.driver"); driver != "" {
		cfg.Database.Driver = driver
	}
	if url := c.v.GetString("database.url"); url != "" {
		cfg.Database.URL = url
	}
	if seedFile := c.v.GetString("ledger.seed_file"); seedFile != "" {
		cfg.Ledger.SeedFile = seedFile
	}
	if redisURL := c.v.GetString("redis.url"); redisURL != "" {
		cfg.Redis.URL = redisURL
	}
	return cfg
}

// session is an open store plus the cache the API server reads through.
type session struct {
	cfg      *config.Config
	database *db.Database
	cache    adapter.AggregateCache
	closers  []func() error
}

// open connects to the store, migrates and seeds it, and attaches the
// aggregate cache when Redis is configured so API reads see CLI writes.
func (c *cli) open(ctx context.Context) (*session, error) {
	cfg := c.config()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	database, err := db.Open(&cfg.Database)
	if err != nil {
		return nil, err
	}
	s := &session{
		cfg:      cfg,
		database: database,
		cache:    cache.NoopCache{},
		closers:  []func() error{database.Close},
	}

	if err := database.Prepare(ctx, cfg.Ledger.SeedFile); err != nil {
		s.close()
		return nil, err
	}

	if cfg.Redis.URL != "" {
		client, err := cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			slog.Warn("Redis unavailable, cache will not be invalidated", "error", err)
		} else {
			s.cache = cache.NewRedisAggregateCache(client, cfg.Redis.CacheTTL)
			s.closers = append(s.closers, client.Close)
		}
	}

	return s, nil
}

func (s *session) unitOfWork() adapter.UnitOfWork {
	return cache.NewInvalidatingUnitOfWork(persistence.NewUnitOfWork(s.database.DB(), adapter.SystemClock{}), s.cache)
}

func (s *session) close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			slog.Error("Failed to close resource", "error", err)
		}
	}
}
