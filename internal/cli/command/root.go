// Package command provides CLI command definitions for zkadmin.
//
// It uses urfave/cli/v2 for command parsing. Global flags override
// environment variables, which override the config file.
package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/tresorit/zerokit-admin-go/internal/cli/config"
	"github.com/tresorit/zerokit-admin-go/internal/cli/output"
	"github.com/tresorit/zerokit-admin-go/internal/cli/profile"
	"github.com/tresorit/zerokit-admin-go/internal/infra/buildinfo"
	"github.com/tresorit/zerokit-admin-go/internal/infra/tlsroots"
	"github.com/tresorit/zerokit-admin-go/internal/telemetry/logger"
	"github.com/tresorit/zerokit-admin-go/internal/telemetry/metric"
	"github.com/tresorit/zerokit-admin-go/pkg/adminapi"
)

// metadataEnvKey is where the Before hook stashes the shared runtime.
const metadataEnvKey = "zkadminEnv"

// appEnv carries the per-invocation runtime shared by all commands.
type appEnv struct {
	cfg     config.Config
	logger  *slog.Logger
	metrics *metric.Recorder
}

// App creates the CLI application.
func App() *cli.App {
	app := &cli.App{
		Name:    "zkadmin",
		Usage:   "ZeroKit tenant administration tool",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.BuildTime),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			UserCommand(),
			TenantCommand(),
			CallCommand(),
			ProfileCommand(),
		},
		Before: setupEnv,
	}

	return app
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "profile",
			Aliases: []string{"p"},
			Usage:   "Stored credential profile name",
			EnvVars: []string{"ZKADMIN_PROFILE"},
		},
		&cli.StringFlag{
			Name:    "config",
			Usage:   "Config file path (default ~/.zerokit-admin/config.yaml)",
			EnvVars: []string{"ZKADMIN_CONFIG"},
		},
		&cli.StringFlag{
			Name:    "service-url",
			Aliases: []string{"u"},
			Usage:   "Tenant service URL (e.g. https://mytenant.api.tresorit.io)",
			EnvVars: []string{"ZKADMIN_SERVICE_URL"},
		},
		&cli.StringFlag{
			Name:    "admin-key",
			Aliases: []string{"k"},
			Usage:   "Tenant admin key (64 hex characters)",
			EnvVars: []string{"ZKADMIN_SERVICE_ADMINKEY"},
		},
		&cli.StringFlag{
			Name:    "tenant-id",
			Usage:   "Explicit tenant id when the service URL does not carry it",
			EnvVars: []string{"ZKADMIN_SERVICE_TENANTID"},
		},
		&cli.StringFlag{
			Name:    "ca-bundle",
			Usage:   "PEM file with additional root CAs for self-hosted tenants",
			EnvVars: []string{"ZKADMIN_SERVICE_CABUNDLE"},
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
			Value:   "table",
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "Per-request timeout",
			Value: 30 * time.Second,
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "Enable debug logging",
		},
		&cli.StringFlag{
			Name:  "log-format",
			Usage: "Log format: text, json",
		},
		&cli.StringFlag{
			Name:  "metrics-listen",
			Usage: "Expose Prometheus metrics on this address (host:port)",
		},
	}
}

// setupEnv resolves configuration and builds the logger and metrics
// recorder every command shares.
func setupEnv(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	rec := metric.NewRecorder()

	if cfg.Metrics.Listen != "" {
		go func() {
			if err := rec.Serve(c.Context, cfg.Metrics.Listen, log); err != nil {
				log.Warn("metrics endpoint stopped", "error", err)
			}
		}()
	}

	c.App.Metadata[metadataEnvKey] = &appEnv{cfg: cfg, logger: log, metrics: rec}
	return nil
}

// loadConfig layers the config file, environment and command-line flags.
func loadConfig(c *cli.Context) (config.Config, error) {
	path := c.String("config")
	defaultPath := path == ""
	if defaultPath {
		path = config.DefaultPath()
	}

	overrides := map[string]any{}
	setString := func(flag, key string) {
		if c.IsSet(flag) {
			overrides[key] = c.String(flag)
		}
	}
	setString("profile", "profile")
	setString("service-url", "service.url")
	setString("admin-key", "service.adminkey")
	setString("tenant-id", "service.tenantid")
	setString("ca-bundle", "service.cabundle")
	setString("output", "output")
	setString("log-format", "log.format")
	setString("metrics-listen", "metrics.listen")
	if c.IsSet("timeout") {
		overrides["timeout"] = c.Duration("timeout").String()
	}
	if c.Bool("verbose") {
		overrides["log.level"] = "debug"
	}

	cfg, err := config.Load(path, defaultPath, overrides)
	if err != nil {
		return config.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// getEnv retrieves the shared runtime from app metadata.
func getEnv(c *cli.Context) *appEnv {
	if env, ok := c.App.Metadata[metadataEnvKey].(*appEnv); ok {
		return env
	}
	return nil
}

// newClient resolves credentials and builds the signing client.
//
// Direct settings (flags, environment, config file) win; a named profile
// fills whatever they leave blank.
func newClient(c *cli.Context) (*adminapi.Client, error) {
	env := getEnv(c)
	if env == nil {
		return nil, fmt.Errorf("command environment not initialized")
	}
	cfg := env.cfg

	serviceURL := cfg.Service.URL
	adminKey := cfg.Service.AdminKey
	tenantID := cfg.Service.TenantID

	if (serviceURL == "" || adminKey == "") && cfg.Profile != "" {
		p, err := loadProfile(cfg.Profile)
		if err != nil {
			return nil, fmt.Errorf("profile %q: %w", cfg.Profile, err)
		}
		if serviceURL == "" {
			serviceURL = p.ServiceURL
		}
		if adminKey == "" {
			adminKey = p.AdminKey
		}
		if tenantID == "" {
			tenantID = p.TenantID
		}
	}

	if serviceURL == "" || adminKey == "" {
		return nil, fmt.Errorf("no credentials: set --service-url and --admin-key, or select a stored profile with --profile")
	}

	httpClient := &http.Client{Timeout: cfg.Timeout}
	if cfg.Service.CABundle != "" {
		pool := tlsroots.NewPool()
		if err := pool.AddCertFile(cfg.Service.CABundle); err != nil {
			return nil, err
		}
		httpClient.Transport = &http.Transport{TLSClientConfig: pool.TLSConfig()}
	}

	opts := []adminapi.Option{
		adminapi.WithHTTPClient(httpClient),
		adminapi.WithLogger(env.logger),
		adminapi.WithUserAgent(buildinfo.UserAgent()),
	}
	if env.metrics != nil {
		opts = append(opts, adminapi.WithMetrics(env.metrics))
	}
	if tenantID != "" {
		opts = append(opts, adminapi.WithTenantID(tenantID))
	}
	return adminapi.NewClient(serviceURL, adminKey, opts...)
}

// openStore opens the profile store, encrypted by default.
func openStore(insecure bool) (*profile.Store, error) {
	dir := config.Dir()
	if insecure {
		return profile.NewInsecureStore(filepath.Join(dir, profile.InsecureFileName)), nil
	}
	return profile.NewStoreFromEnv(filepath.Join(dir, profile.FileName))
}

// loadProfile reads one named profile. When no passphrase is set but a
// plaintext store exists, the plaintext store is consulted.
func loadProfile(name string) (profile.Profile, error) {
	store, err := openStore(false)
	if errors.Is(err, profile.ErrPassphraseMissing) {
		plain := filepath.Join(config.Dir(), profile.InsecureFileName)
		if _, statErr := os.Stat(plain); statErr == nil {
			store, err = profile.NewInsecureStore(plain), nil
		}
	}
	if err != nil {
		return profile.Profile{}, err
	}
	return store.Get(name)
}

// newFormatter builds the output formatter selected by --output.
func newFormatter(c *cli.Context) output.Formatter {
	format := output.FormatTable
	if env := getEnv(c); env != nil {
		format = output.Format(env.cfg.Output)
	}
	return output.NewFormatter(format)
}

// timeoutContext derives the per-request context from the configured
// timeout.
func timeoutContext(c *cli.Context) (context.Context, context.CancelFunc) {
	parent := c.Context
	if parent == nil {
		parent = context.Background()
	}
	timeout := 30 * time.Second
	if env := getEnv(c); env != nil && env.cfg.Timeout > 0 {
		timeout = env.cfg.Timeout
	}
	return context.WithTimeout(parent, timeout)
}
