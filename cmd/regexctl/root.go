package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/regexboard/internal/config"
	logpkg "github.com/kailas-cloud/regexboard/internal/logger"
	"github.com/kailas-cloud/regexboard/internal/version"
	regexboard "github.com/kailas-cloud/regexboard/pkg/sdk"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	configPath string
	driver     string
	path       string
	addr       string
	password   string
	keyPrefix  string
	format     string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:          "regexctl",
		Short:        "regexctl - manage regex patterns and review their matches",
		Long:         "regexctl edits a set of /pattern/flags regular expressions, runs them over a stored document and records which matches were approved.",
		Version:      version.String(),
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return checkFormat(opts.format)
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&opts.configPath, "config", "", "YAML config file (storage section is used)")
	f.StringVar(&opts.driver, "driver", "", "Storage driver: memory, sqlite, redis or valkey (default sqlite)")
	f.StringVar(&opts.path, "path", "", "SQLite database file (default $XDG_DATA_HOME/regexboard/store.db)")
	f.StringVar(&opts.addr, "addr", "", "Redis or Valkey address, host:port")
	f.StringVar(&opts.password, "password", "", "Redis or Valkey password")
	f.StringVar(&opts.keyPrefix, "key-prefix", "", "Storage key prefix (default \"regexboard:\")")
	f.StringVar(&opts.format, "format", formatTable, "Output format: table or json")
	f.StringVar(&opts.logLevel, "log-level", "", "Log level written to stderr (default warn)")

	root.AddCommand(newPatternsCmd(opts))
	root.AddCommand(newDocumentCmd(opts))
	root.AddCommand(newMatchesCmd(opts))
	root.AddCommand(newApproveCmd(opts))
	root.AddCommand(newRecomputeCmd(opts))
	root.AddCommand(newViewCmd(opts))
	root.AddCommand(newMCPCmd(opts))

	return root
}

// storage merges the config file and the flags. Flags win.
func (o *globalOptions) storage() (config.StorageConfig, config.MatchingConfig, error) {
	cfg := config.Default()
	if o.configPath != "" {
		loaded, err := config.LoadFile(o.configPath)
		if err != nil {
			return config.StorageConfig{}, config.MatchingConfig{}, err
		}
		cfg = loaded
	}

	st := cfg.Storage
	if o.driver != "" {
		st.Driver = o.driver
	}
	if o.path != "" {
		st.Path = o.path
	}
	if o.addr != "" {
		st.Addrs = []string{o.addr}
	}
	if o.password != "" {
		st.Password = o.password
	}
	if o.keyPrefix != "" {
		st.KeyPrefix = o.keyPrefix
	}
	return st, cfg.Matching, nil
}

func (o *globalOptions) logger() (*zap.Logger, error) {
	return logpkg.NewCLILogger(os.Stderr, o.logLevel)
}

// open builds an SDK client from the merged settings.
func (o *globalOptions) open(ctx context.Context) (*regexboard.Client, error) {
	st, m, err := o.storage()
	if err != nil {
		return nil, err
	}

	var clientOpts []regexboard.Option
	switch st.Driver {
	case config.DriverMemory:
		clientOpts = append(clientOpts, regexboard.WithMemory())
	case config.DriverSQLite, "":
		clientOpts = append(clientOpts, regexboard.WithSQLite(st.Path))
	case config.DriverRedis, config.DriverValkey:
		if len(st.Addrs) == 0 {
			return nil, fmt.Errorf("--addr is required for driver %s", st.Driver)
		}
		if st.Driver == config.DriverRedis {
			clientOpts = append(clientOpts, regexboard.WithRedis(st.Addrs[0], st.Password))
		} else {
			clientOpts = append(clientOpts, regexboard.WithValkey(st.Addrs[0], st.Password))
		}
	default:
		return nil, fmt.Errorf("invalid driver: %s (valid values: memory, sqlite, redis, valkey)", st.Driver)
	}
	if st.KeyPrefix != "" {
		clientOpts = append(clientOpts, regexboard.WithKeyPrefix(st.KeyPrefix))
	}
	clientOpts = append(clientOpts, regexboard.WithMatchTimeout(m.Timeout()))

	logger, err := o.logger()
	if err != nil {
		return nil, err
	}
	clientOpts = append(clientOpts, regexboard.WithServiceLogger(logger))

	return regexboard.New(ctx, clientOpts...)
}

// withClient opens a client, runs fn and closes the client.
func withClient(cmd *cobra.Command, o *globalOptions, fn func(ctx context.Context, c *regexboard.Client) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	c, err := o.open(ctx)
	if err != nil {
		return err
	}
	defer c.Close()
	return fn(ctx, c)
}
