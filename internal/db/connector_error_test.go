package db

import (
	"errors"
	"strings"
	"testing"

	"github.com/vvka-141/tsqlx/pkg/tsqlx"
)

func TestWrapConnectionError(t *testing.T) {
	cfg := &tsqlx.ConnectionConfig{Server: `db01\SQL2019`, Host: "db01", Database: "Sales"}

	tests := []struct {
		name         string
		errMsg       string
		wantContains string
		wantSentinel error
	}{
		{
			name:         "database missing",
			errMsg:       `mssql: login error: Cannot open database "Sales" requested by the login. The login failed.`,
			wantContains: `cannot open database "Sales" on db01\SQL2019`,
			wantSentinel: tsqlx.ErrDatabaseNotFound,
		},
		{
			name:         "login failed",
			errMsg:       "mssql: login error: Login failed for user 'deployer'.",
			wantContains: `login failed on db01\SQL2019`,
			wantSentinel: tsqlx.ErrConnectionFailed,
		},
		{
			name:         "connection refused",
			errMsg:       "unable to open tcp connection with host 'db01:1433': dial tcp 10.0.0.5:1433: connect: connection refused",
			wantContains: `connection refused to db01\SQL2019`,
			wantSentinel: tsqlx.ErrConnectionFailed,
		},
		{
			name:         "actively refused (Windows)",
			errMsg:       "dial tcp 127.0.0.1:1433: connectex: No connection could be made because the target machine actively refused it",
			wantContains: "connection refused to",
			wantSentinel: tsqlx.ErrConnectionFailed,
		},
		{
			name:         "no such host",
			errMsg:       "dial tcp: lookup db01: no such host",
			wantContains: `cannot resolve host "db01"`,
			wantSentinel: tsqlx.ErrConnectionFailed,
		},
		{
			name:         "browser lookup",
			errMsg:       "unable to get instances from Sql Server Browser on host db01: read udp: i/o timeout",
			wantContains: `cannot locate instance "db01\SQL2019"`,
			wantSentinel: tsqlx.ErrConnectionFailed,
		},
		{
			name:         "timeout",
			errMsg:       "dial tcp 10.0.0.5:1433: i/o timeout",
			wantContains: "connection timed out to",
			wantSentinel: tsqlx.ErrConnectionFailed,
		},
		{
			name:         "certificate",
			errMsg:       "TLS Handshake failed: x509: certificate signed by unknown authority",
			wantContains: "--trust-server-certificate",
			wantSentinel: tsqlx.ErrConnectionFailed,
		},
		{
			name:         "anything else",
			errMsg:       "something odd",
			wantContains: `failed to connect to db01\SQL2019: something odd`,
			wantSentinel: tsqlx.ErrConnectionFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := wrapConnectionError(errors.New(tt.errMsg), cfg)

			if !strings.Contains(err.Error(), tt.wantContains) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantContains)
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("error %q lost the original message", err.Error())
			}
			if !errors.Is(err, tt.wantSentinel) {
				t.Errorf("errors.Is(err, %v) = false", tt.wantSentinel)
			}
			if got := tsqlx.ExitCodeForError(err); got != tsqlx.ExitConnectionError {
				t.Errorf("ExitCodeForError = %d, want %d", got, tsqlx.ExitConnectionError)
			}
		})
	}
}
