package db

import (
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/microsoft/go-mssqldb/msdsn"

	"github.com/vvka-141/tsqlx/pkg/tsqlx"
)

func TestParseServer(t *testing.T) {
	tests := []struct {
		name         string
		server       string
		wantHost     string
		wantInstance string
		wantPort     int
		wantErr      error
	}{
		{name: "host only", server: "db01", wantHost: "db01"},
		{name: "named instance", server: `db01\SQL2019`, wantHost: "db01", wantInstance: "SQL2019"},
		{name: "comma port", server: "db01,14330", wantHost: "db01", wantPort: 14330},
		{name: "colon port", server: "db01.corp.local:1433", wantHost: "db01.corp.local", wantPort: 1433},
		{name: "tcp prefix", server: "tcp:myserver.database.windows.net,1433", wantHost: "myserver.database.windows.net", wantPort: 1433},
		{name: "instance and port", server: `db01\INST,50000`, wantHost: "db01", wantInstance: "INST", wantPort: 50000},
		{name: "local dot", server: ".", wantHost: "localhost"},
		{name: "local parens", server: `(local)\SQLEXPRESS`, wantHost: "localhost", wantInstance: "SQLEXPRESS"},
		{name: "surrounding spaces", server: "  db01  ", wantHost: "db01"},
		{name: "ipv6 with port", server: "[::1]:1433", wantHost: "::1", wantPort: 1433},
		{name: "blank", server: "   ", wantErr: tsqlx.ErrMissingArgument},
		{name: "bad port", server: "db01,abc", wantErr: tsqlx.ErrInvalidConfig},
		{name: "port out of range", server: "db01,70000", wantErr: tsqlx.ErrInvalidConfig},
		{name: "empty instance", server: `db01\`, wantErr: tsqlx.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host, instance, port, err := ParseServer(tt.server)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseServer(%q) error = %v, want %v", tt.server, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseServer(%q) unexpected error: %v", tt.server, err)
			}
			if host != tt.wantHost || instance != tt.wantInstance || port != tt.wantPort {
				t.Errorf("ParseServer(%q) = (%q, %q, %d), want (%q, %q, %d)",
					tt.server, host, instance, port, tt.wantHost, tt.wantInstance, tt.wantPort)
			}
		})
	}
}

func TestBuildConnectionString(t *testing.T) {
	cfg := &tsqlx.ConnectionConfig{
		Server:                 `db01\SQL2019`,
		Database:               "Sales",
		Username:               "deployer",
		Password:               "p@ss word",
		Encrypt:                "strict",
		TrustServerCertificate: true,
		ConnectTimeout:         45 * time.Second,
	}

	u, err := url.Parse(BuildConnectionString(cfg))
	if err != nil {
		t.Fatalf("BuildConnectionString produced an unparsable URL: %v", err)
	}

	if u.Scheme != "sqlserver" {
		t.Errorf("scheme = %q, want sqlserver", u.Scheme)
	}
	if u.Host != "db01" {
		t.Errorf("host = %q, want db01", u.Host)
	}
	if u.Path != "/SQL2019" {
		t.Errorf("path = %q, want /SQL2019", u.Path)
	}
	if u.User.Username() != "deployer" {
		t.Errorf("user = %q, want deployer", u.User.Username())
	}
	if pass, _ := u.User.Password(); pass != "p@ss word" {
		t.Errorf("password = %q, want %q", pass, "p@ss word")
	}

	q := u.Query()
	want := map[string]string{
		"database":               "Sales",
		"app name":               tsqlx.DefaultAppName,
		"encrypt":                "strict",
		"TrustServerCertificate": "true",
		"connection timeout":     "45",
	}
	for key, value := range want {
		if got := q.Get(key); got != value {
			t.Errorf("query %q = %q, want %q", key, got, value)
		}
	}
	if q.Has("cloudsql") {
		t.Error("cloudsql parameter must only be set for Google Cloud SQL")
	}

	// the driver must read back what the URL encoding produced
	parsed, err := msdsn.Parse(BuildConnectionString(cfg))
	if err != nil {
		t.Fatalf("driver rejected the DSN: %v", err)
	}
	if parsed.AppName != tsqlx.DefaultAppName {
		t.Errorf("driver app name = %q, want %q", parsed.AppName, tsqlx.DefaultAppName)
	}
	if parsed.Database != "Sales" || parsed.Host != "db01" || parsed.Instance != "SQL2019" {
		t.Errorf("driver target = %s/%s/%s, want db01/SQL2019/Sales", parsed.Host, parsed.Instance, parsed.Database)
	}
}

func TestBuildConnectionString_ParsedFieldsWin(t *testing.T) {
	cfg := &tsqlx.ConnectionConfig{Server: "ignored", Host: "db02", Port: 14330, Database: "HR", AppName: "nightly"}

	u, err := url.Parse(BuildConnectionString(cfg))
	if err != nil {
		t.Fatal(err)
	}
	if u.Host != "db02:14330" {
		t.Errorf("host = %q, want db02:14330", u.Host)
	}
	if u.User != nil {
		t.Errorf("integrated security must not send a user, got %v", u.User)
	}
	if got := u.Query().Get("app name"); got != "nightly" {
		t.Errorf("app name = %q, want nightly", got)
	}
	if u.Query().Has("encrypt") || u.Query().Has("TrustServerCertificate") {
		t.Error("unset options must not appear in the DSN")
	}
}

func TestBuildConnectionString_GoogleCloudSQL(t *testing.T) {
	cfg := &tsqlx.ConnectionConfig{
		Host:           "localhost",
		Database:       "Sales",
		Username:       "sqlserver",
		AuthMethod:     tsqlx.AuthMethodGoogleCloudSQL,
		GoogleInstance: "proj:europe-west1:sql1",
	}

	u, err := url.Parse(BuildConnectionString(cfg))
	if err != nil {
		t.Fatal(err)
	}
	if got := u.Query().Get("cloudsql"); got != "proj:europe-west1:sql1" {
		t.Errorf("cloudsql = %q", got)
	}
}
