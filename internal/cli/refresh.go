package cli

import (
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/vvka-141/tsqlx/internal/config"
	"github.com/vvka-141/tsqlx/internal/db"
	"github.com/vvka-141/tsqlx/internal/files/filesystem"
	"github.com/vvka-141/tsqlx/internal/logging"
	"github.com/vvka-141/tsqlx/internal/scripter"
	"github.com/vvka-141/tsqlx/internal/services"
	"github.com/vvka-141/tsqlx/pkg/tsqlx"
)

type refreshFlagValues struct {
	server, database, scriptPath string
	username                     string
	authMethod                   string
	azure                        bool
	azureTenantID, azureClientID string
	googleInstance               string
	encrypt                      string
	trustServerCertificate       bool
	timeout                      time.Duration
	verbose                      bool
	logFormat                    string
}

func (f *refreshFlagValues) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.server, "server", "s", "",
		"SQL Server name: host, host\\instance, host,port or host:port\n"+
			"Precedence: --server > $TSQLX_SERVER > tsqlx.yaml")
	fl.StringVarP(&f.database, "db", "d", "",
		"Database to script\n"+
			"Precedence: --db > $TSQLX_DATABASE > tsqlx.yaml")
	fl.StringVarP(&f.scriptPath, "scriptpath", "p", "",
		"Existing root folder for the scripts")
	fl.StringVarP(&f.username, "user", "U", "",
		"SQL Server login; selects SQL authentication (default: $TSQLX_USER)")
	fl.StringVar(&f.authMethod, "auth", "",
		"Authentication: integrated|sql|azure|google (default: inferred)")

	fl.BoolVar(&f.azure, "azure", false,
		"Enable Azure Entra ID authentication\n"+
			"Uses DefaultAzureCredential chain (Managed Identity, Azure CLI, etc.)")
	fl.StringVar(&f.azureTenantID, "azure-tenant-id", "",
		"Azure AD tenant/directory ID (overrides $AZURE_TENANT_ID)")
	fl.StringVar(&f.azureClientID, "azure-client-id", "",
		"Azure AD application/client ID (overrides $AZURE_CLIENT_ID)")
	fl.StringVar(&f.googleInstance, "google-instance", "",
		"Cloud SQL instance connection name (project:region:instance)")

	fl.StringVar(&f.encrypt, "encrypt", "",
		"Driver encrypt mode: true|false|strict|disable")
	fl.BoolVar(&f.trustServerCertificate, "trust-server-certificate", false,
		"Accept the server certificate without validation")
	fl.DurationVar(&f.timeout, "timeout", 0,
		"Connect timeout (default 30s, or timeout in tsqlx.yaml)")

	fl.BoolVarP(&f.verbose, "verbose", "v", false, "Enable verbose output")
	fl.StringVar(&f.logFormat, "log-format", "text", "Output format: text|json")
}

// Test seams.
var (
	newOpener = func() tsqlx.SessionOpener { return scripter.NewOpener() }
	newFS     = func() filesystem.FileSystemProvider { return filesystem.NewOSFileSystem() }
	loadEnv   = func() *db.EnvVars {
		_ = godotenv.Load()
		return db.LoadFromEnvironment()
	}
)

// buildRefreshConfig validates the arguments and resolves the connection.
// The script path is checked first, then the server, then the database.
func buildRefreshConfig(fsys filesystem.FileSystemProvider, flags *refreshFlagValues, env *db.EnvVars) (*tsqlx.RefreshConfig, error) {
	if strings.TrimSpace(flags.scriptPath) == "" || !filesystem.IsDir(fsys, flags.scriptPath) {
		return nil, errors.Wrapf(tsqlx.ErrDirectoryNotFound,
			"The script path must point to an existing directory (%q)", flags.scriptPath)
	}

	projectCfg, err := config.Load(fsys, flags.scriptPath)
	if err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return nil, errors.Wrapf(err, "failed to load %s", config.ConfigFileName)
	}

	connFlags := &db.ConnFlags{
		Server:                 strings.TrimSpace(flags.server),
		Database:               strings.TrimSpace(flags.database),
		Username:               flags.username,
		AuthMethod:             flags.authMethod,
		Encrypt:                flags.encrypt,
		TrustServerCertificate: flags.trustServerCertificate,
		ConnectTimeout:         flags.timeout,
		GoogleInstance:         flags.googleInstance,
	}
	azureFlags := &db.AzureFlags{
		Enabled:  flags.azure,
		TenantID: flags.azureTenantID,
		ClientID: flags.azureClientID,
	}

	// Checked before parsing so a blank server reports the missing argument.
	if firstNonBlank(connFlags.Server, env.TSQLX_SERVER, serverOf(projectCfg)) == "" {
		return nil, errors.Wrap(tsqlx.ErrMissingArgument, "The server name is not specified")
	}

	connConfig, err := db.ResolveConnectionParams(connFlags, azureFlags, env, projectCfg)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if strings.TrimSpace(connConfig.Database) == "" {
		return nil, errors.Wrap(tsqlx.ErrMissingArgument, "The database name is not specified")
	}

	return &tsqlx.RefreshConfig{
		ScriptPath: flags.scriptPath,
		Connection: *connConfig,
		Verbose:    flags.verbose,
	}, nil
}

func serverOf(pc *config.ProjectConfig) string {
	if pc == nil {
		return ""
	}
	return pc.Connection.Server
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func newLogger(format string, out io.Writer, verbose bool) (tsqlx.Logger, error) {
	switch strings.ToLower(format) {
	case "", "text":
		return logging.NewConsoleLogger(out, verbose), nil
	case "json":
		return logging.NewJSONLogger(out, verbose), nil
	default:
		return nil, errors.Wrapf(tsqlx.ErrInvalidConfig, "unknown log format %q (want text or json)", format)
	}
}

func runRefresh(cmd *cobra.Command, flags *refreshFlagValues) error {
	logger, err := newLogger(flags.logFormat, cmd.OutOrStdout(), flags.verbose)
	if err != nil {
		return err
	}

	fsys := newFS()
	cfg, err := buildRefreshConfig(fsys, flags, loadEnv())
	if err != nil {
		return err
	}

	if err := ensurePassword(&cfg.Connection, cmd.ErrOrStderr()); err != nil {
		return err
	}

	if flags.verbose {
		logConnectionVerbose(logger, &cfg.Connection)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc := services.NewRefreshService(fsys, logger, newOpener())
	return svc.Refresh(ctx, cfg)
}

// logConnectionVerbose logs the resolved connection, never the password.
func logConnectionVerbose(logger tsqlx.Logger, c *tsqlx.ConnectionConfig) {
	logger.Verbose("Connection resolved:")
	logger.Verbose("  Server: %s", c.Server)
	if c.Instance != "" {
		logger.Verbose("  Instance: %s", c.Instance)
	}
	if c.Port != 0 {
		logger.Verbose("  Port: %d", c.Port)
	}
	logger.Verbose("  Database: %s", c.Database)
	if c.Username != "" {
		logger.Verbose("  User: %s", c.Username)
	}
	logger.Verbose("  Auth Method: %s", c.AuthMethod)
	logger.Verbose("  Connect Timeout: %s", c.ConnectTimeout)
}
