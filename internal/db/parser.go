package db

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/vvka-141/tsqlx/pkg/tsqlx"
)

// ParseServer splits a SQL Server name as users write it into host, instance and port.
//
// Supported forms:
//   - host
//   - host\instance
//   - host,port
//   - host:port
//   - tcp:host,port
//   - (local) and . for the local machine
func ParseServer(server string) (host, instance string, port int, err error) {
	s := strings.TrimSpace(server)
	if s == "" {
		return "", "", 0, fmt.Errorf("the server name is not specified: %w", tsqlx.ErrMissingArgument)
	}
	if len(s) > 4 && strings.EqualFold(s[:4], "tcp:") {
		s = s[4:]
	}

	if i := strings.LastIndex(s, ","); i >= 0 {
		port, err = parsePort(s[i+1:], server)
		if err != nil {
			return "", "", 0, err
		}
		s = s[:i]
	} else if h, p, splitErr := net.SplitHostPort(s); splitErr == nil && !strings.Contains(h, `\`) {
		port, err = parsePort(p, server)
		if err != nil {
			return "", "", 0, err
		}
		s = h
	}

	if i := strings.Index(s, `\`); i >= 0 {
		instance = s[i+1:]
		s = s[:i]
		if instance == "" {
			return "", "", 0, fmt.Errorf("invalid server %q: empty instance name: %w", server, tsqlx.ErrInvalidConfig)
		}
	}

	switch strings.ToLower(s) {
	case "", ".", "(local)", "(localdb)":
		s = "localhost"
	}
	return s, instance, port, nil
}

func parsePort(value, server string) (int, error) {
	port, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || port < 1 || port > 65535 {
		return 0, fmt.Errorf("invalid port in server %q: %w", server, tsqlx.ErrInvalidConfig)
	}
	return port, nil
}

// BuildConnectionString converts a ConnectionConfig into a sqlserver:// URL
// understood by go-mssqldb. Host, Instance and Port are taken from the config
// when set and parsed from Server otherwise.
func BuildConnectionString(config *tsqlx.ConnectionConfig) string {
	host, instance, port := config.Host, config.Instance, config.Port
	if host == "" {
		host, instance, port, _ = ParseServer(config.Server)
	}

	u := &url.URL{
		Scheme: "sqlserver",
		Host:   host,
	}
	if port > 0 {
		u.Host = net.JoinHostPort(host, strconv.Itoa(port))
	} else if strings.Contains(host, ":") {
		u.Host = "[" + host + "]"
	}
	if instance != "" {
		u.Path = "/" + instance
	}

	if config.Username != "" {
		if config.Password != "" {
			u.User = url.UserPassword(config.Username, config.Password)
		} else {
			u.User = url.User(config.Username)
		}
	}

	query := url.Values{}
	if config.Database != "" {
		query.Set("database", config.Database)
	}
	appName := config.AppName
	if appName == "" {
		appName = tsqlx.DefaultAppName
	}
	query.Set("app name", appName)
	if config.Encrypt != "" {
		query.Set("encrypt", config.Encrypt)
	}
	if config.TrustServerCertificate {
		query.Set("TrustServerCertificate", "true")
	}
	if config.ConnectTimeout > 0 {
		query.Set("connection timeout", strconv.Itoa(int(config.ConnectTimeout.Seconds())))
	}
	if config.AuthMethod == tsqlx.AuthMethodGoogleCloudSQL && config.GoogleInstance != "" {
		query.Set("cloudsql", config.GoogleInstance)
	}

	u.RawQuery = query.Encode()
	return u.String()
}
