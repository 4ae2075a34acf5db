package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
)

// NetAddress is a host:port pair usable as a [flag.Value].
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses the server flags in args (normally os.Args[1:]) into a
// partial config; unset flags stay zero so lower-priority sources survive
// the merge.
//
//	-a                  listen address host:port
//	-d                  database DSN (postgres://... or sqlite://path)
//	-c, -config         JSON config file
//	-encryption-key     field encryption key, 64 hex chars
//	-token-sign-key     token signing key
//	-token-issuer       token issuer
//	-token-duration     token lifetime (24h, 30m)
//	-password-hash-cost bcrypt cost
//	-env                development or production
//	-log-level          debug, info, warn, error
//	-request-timeout    per-request timeout
//	-auth-rate-limit    register/login requests per second per client
//	-auth-rate-burst    register/login burst per client
func ParseFlags(args []string) (*StructuredConfig, error) {
	var (
		cfg     StructuredConfig
		address NetAddress
	)

	fs := flag.NewFlagSet("go-chat-vault-server", flag.ContinueOnError)
	fs.Var(&address, "a", "listen address host:port")
	fs.StringVar(&cfg.Storage.DB.DSN, "d", "", "database DSN (postgres://... or sqlite://path)")
	fs.StringVar(&cfg.JSONFilePath, "c", "", "JSON config file path")
	fs.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file path")
	fs.StringVar(&cfg.App.EncryptionKey, "encryption-key", "", "field encryption key (64 hex chars)")
	fs.StringVar(&cfg.App.TokenSignKey, "token-sign-key", "", "token signing key")
	fs.StringVar(&cfg.App.TokenIssuer, "token-issuer", "", "token issuer")
	fs.DurationVar(&cfg.App.TokenDuration, "token-duration", 0, "token lifetime (e.g. 24h, 30m)")
	fs.IntVar(&cfg.App.PasswordHashCost, "password-hash-cost", 0, "bcrypt cost")
	fs.StringVar(&cfg.App.Environment, "env", "", "development or production")
	fs.StringVar(&cfg.App.LogLevel, "log-level", "", "debug, info, warn, error")
	fs.DurationVar(&cfg.Server.RequestTimeout, "request-timeout", 0, "per-request timeout (e.g. 30s)")
	fs.Float64Var(&cfg.Server.AuthRateLimit, "auth-rate-limit", 0, "register/login requests per second per client")
	fs.IntVar(&cfg.Server.AuthRateBurst, "auth-rate-burst", 0, "register/login burst per client")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFlags, err)
	}
	cfg.Server.HTTPAddress = address.String()

	return &cfg, nil
}

// String returns host:port, or "" when nothing was set.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}
	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Set parses host:port. An empty host (":8080") binds all interfaces;
// otherwise the host must be "localhost" or an IP literal.
func (a *NetAddress) Set(s string) error {
	host, rawPort, err := net.SplitHostPort(s)
	if err != nil {
		return fmt.Errorf("need address in a form `host:port`: %w", err)
	}

	port, err := strconv.Atoi(rawPort)
	if err != nil {
		return fmt.Errorf("invalid port %q: %w", rawPort, err)
	}
	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1..65535")
	}
	if host != "" && host != "localhost" && net.ParseIP(host) == nil {
		return fmt.Errorf("incorrect IP address %q", host)
	}

	a.Host, a.Port = host, port
	return nil
}
