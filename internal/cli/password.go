package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/vvka-141/tsqlx/pkg/tsqlx"
)

var (
	stdinIsTerminal = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }
	readPassword    = func() ([]byte, error) { return term.ReadPassword(int(os.Stdin.Fd())) }
)

// ensurePassword prompts for the SQL login password when none was supplied
// and stdin is a terminal. Without a terminal the driver reports the login failure.
func ensurePassword(c *tsqlx.ConnectionConfig, prompt io.Writer) error {
	if !usesSQLLogin(c.AuthMethod) || c.Password != "" || !stdinIsTerminal() {
		return nil
	}

	fmt.Fprintf(prompt, "Password for %s: ", c.Username)
	pw, err := readPassword()
	fmt.Fprintln(prompt)
	if err != nil {
		return errors.Wrap(err, "failed to read password")
	}
	c.Password = string(pw)
	return nil
}

// Cloud SQL only replaces the transport; the login is still a SQL login.
func usesSQLLogin(m tsqlx.AuthMethod) bool {
	return m == tsqlx.AuthMethodSQL || m == tsqlx.AuthMethodGoogleCloudSQL
}
