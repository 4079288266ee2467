package tsqlx

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
)

// ObjectKind identifies the kind of a scripted schema object.
type ObjectKind int

const (
	KindTable          ObjectKind = iota // User table
	KindView                             // View
	KindProcedure                        // T-SQL stored procedure
	KindScalarFunction                   // Scalar user-defined function
	KindTableFunction                    // Inline or multi-statement table-valued function
)

// String returns the kind name as used by OBJECTPROPERTY ("Is" + name).
func (k ObjectKind) String() string {
	switch k {
	case KindTable:
		return "Table"
	case KindView:
		return "View"
	case KindProcedure:
		return "Procedure"
	case KindScalarFunction:
		return "ScalarFunction"
	case KindTableFunction:
		return "TableFunction"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// IsValid returns true if the ObjectKind is a valid, defined value.
func (k ObjectKind) IsValid() bool {
	return k >= KindTable && k <= KindTableFunction
}

// SchemaObject is one scriptable object as returned by a Provider.
// Values are immutable once extracted.
type SchemaObject struct {
	// Schema is the owning schema name, e.g. "dbo"
	Schema string

	// Name is the object name without schema
	Name string

	// Definition is the raw DDL script produced by the provider
	Definition string

	// Kind is the object kind
	Kind ObjectKind

	// Inline marks inline table-valued functions (RETURNS TABLE AS RETURN ...).
	// Only meaningful for KindTableFunction.
	Inline bool
}

// QualifiedName returns schema + "." + name with no quoting or escaping.
func (o SchemaObject) QualifiedName() string {
	return o.Schema + "." + o.Name
}

var pathSeparators = strings.NewReplacer(`\`, "_", "/", "_")

// FileName returns the script file name for the object: <schema>.<name>.sql.
// Path separators in either part (domain-qualified owners such as DOMAIN\user,
// bracketed names such as [a/b]) are replaced with underscores.
func (o SchemaObject) FileName() string {
	return pathSeparators.Replace(o.Schema) + "." + pathSeparators.Replace(o.Name) + ScriptExtension
}

// IsExcluded reports whether the object is excluded by the "_" name prefix.
func (o SchemaObject) IsExcluded() bool {
	return strings.HasPrefix(o.Name, ExcludePrefix)
}

// ObjectSet is one collection of objects synchronized into its own folder.
type ObjectSet struct {
	// Label is the folder name under "Create Scripts"
	Label string

	// Kind selects the provider operation; functions use KindScalarFunction
	// for the whole scalar + table-valued collection.
	Kind ObjectKind
}

// ObjectSets returns the collections in extraction order.
func ObjectSets() []ObjectSet {
	return []ObjectSet{
		{Label: "Tables", Kind: KindTable},
		{Label: "Views", Kind: KindView},
		{Label: "Stored Procedures", Kind: KindProcedure},
		{Label: "Functions", Kind: KindScalarFunction},
	}
}

// SyncTarget is the on-disk destination for one object collection.
type SyncTarget struct {
	// Directory is <scriptpath>/<database>/Create Scripts/<label>
	Directory string

	// Label is the collection label used in progress lines
	Label string
}

// NewSyncTarget derives the target directory for a collection.
func NewSyncTarget(scriptPath, database string, set ObjectSet) SyncTarget {
	return SyncTarget{
		Directory: filepath.Join(scriptPath, database, CreateScriptsDir, set.Label),
		Label:     set.Label,
	}
}

// PathFor returns the script path of an object inside the target directory.
func (t SyncTarget) PathFor(obj SchemaObject) string {
	return filepath.Join(t.Directory, obj.FileName())
}

// Contains reports whether path names a file directly inside the target directory.
func (t SyncTarget) Contains(path string) bool {
	return filepath.Dir(filepath.Clean(path)) == filepath.Clean(t.Directory)
}

// RefreshConfig contains all parameters needed for a refresh run.
type RefreshConfig struct {
	// ScriptPath is the existing root folder for scripts
	ScriptPath string

	// Connection holds the resolved server, database and credentials
	Connection ConnectionConfig

	// Verbose enables detailed logging
	Verbose bool
}

// Validate checks if the RefreshConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *RefreshConfig) Validate() error {
	var result *multierror.Error

	if strings.TrimSpace(c.ScriptPath) == "" {
		result = multierror.Append(result, fmt.Errorf("the script path is not specified: %w", ErrMissingArgument))
	}

	if strings.TrimSpace(c.Connection.Server) == "" {
		result = multierror.Append(result, fmt.Errorf("the server name is not specified: %w", ErrMissingArgument))
	}

	if strings.TrimSpace(c.Connection.Database) == "" {
		result = multierror.Append(result, fmt.Errorf("the database name is not specified: %w", ErrMissingArgument))
	}

	if !c.Connection.AuthMethod.IsValid() {
		result = multierror.Append(result, fmt.Errorf("auth method %v: %w", c.Connection.AuthMethod, ErrUnsupportedAuthMethod))
	}

	if c.Connection.ConnectTimeout < 0 {
		result = multierror.Append(result, fmt.Errorf("connect timeout cannot be negative: %w", ErrInvalidConfig))
	}

	return result.ErrorOrNil()
}

// ConnectionConfig represents resolved connection parameters.
type ConnectionConfig struct {
	// Server as given by the user: host, host\instance, host,port or host:port
	Server string

	// Parsed from Server
	Host     string
	Instance string
	Port     int

	Database string
	Username string
	Password string

	// AuthMethod indicates the authentication mechanism to use
	AuthMethod AuthMethod

	// Encrypt is the driver encrypt mode: "", "true", "false", "strict" or "disable"
	Encrypt                string
	TrustServerCertificate bool

	AppName        string
	ConnectTimeout time.Duration

	// Azure Entra ID authentication parameters (used when AuthMethod is AuthMethodAzureEntraID)
	// If all three are provided, Service Principal authentication is used.
	// If none are provided, DefaultAzureCredential chain is used (env vars, managed identity, CLI, etc.)
	AzureTenantID     string
	AzureClientID     string
	AzureClientSecret string

	// GoogleInstance is the Cloud SQL instance connection name (project:region:instance)
	GoogleInstance string
}

// AuthMethod represents the type of authentication to use.
type AuthMethod int

const (
	AuthMethodIntegrated     AuthMethod = iota // Windows/Kerberos integrated security
	AuthMethodSQL                              // SQL Server login (username/password)
	AuthMethodAzureEntraID                     // Azure Active Directory (Entra ID) access token
	AuthMethodGoogleCloudSQL                   // Google Cloud SQL connector
)

// String returns a human-readable string representation of the AuthMethod.
func (a AuthMethod) String() string {
	switch a {
	case AuthMethodIntegrated:
		return "Integrated"
	case AuthMethodSQL:
		return "SQL Login"
	case AuthMethodAzureEntraID:
		return "Azure Entra ID"
	case AuthMethodGoogleCloudSQL:
		return "Google Cloud SQL"
	default:
		return fmt.Sprintf("Unknown(%d)", a)
	}
}

// IsValid returns true if the AuthMethod is a valid, defined value.
func (a AuthMethod) IsValid() bool {
	return a >= AuthMethodIntegrated && a <= AuthMethodGoogleCloudSQL
}

// ParseAuthMethod maps a configuration value to an AuthMethod.
// An empty value yields AuthMethodIntegrated.
func ParseAuthMethod(s string) (AuthMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "integrated", "windows":
		return AuthMethodIntegrated, nil
	case "sql", "sqllogin", "password":
		return AuthMethodSQL, nil
	case "azure", "entra", "entraid":
		return AuthMethodAzureEntraID, nil
	case "google", "cloudsql":
		return AuthMethodGoogleCloudSQL, nil
	default:
		return AuthMethodIntegrated, fmt.Errorf("unknown auth method %q: %w", s, ErrUnsupportedAuthMethod)
	}
}
