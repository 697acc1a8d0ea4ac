package config

import (
	"errors"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// NetAddress holds structured network address data for host and port.
// It implements the pflag.Value interface.
type NetAddress struct {
	Host string
	Port int

	target *string
}

// BindServerFlags registers the replica server flags on fs. The returned
// config is filled in when fs is parsed and is passed to GetServerConfig.
//
// Flags:
//
//	-a, --address          listen address in format [host]:[port]
//	-r, --root             directory served as a replica
//	    --password-hash    bcrypt hash of the replica password
//	    --token-sign-key   token signing key
//	    --token-issuer     token issuer name
//	    --token-duration   token duration (e.g., "1h", "30m")
//	    --request-timeout  request timeout (e.g., "30s", "1m")
//	-c, --config           json file path with configs
func BindServerFlags(fs *pflag.FlagSet) *StructuredConfig {
	cfg := &StructuredConfig{}

	fs.VarP(&NetAddress{target: &cfg.Server.HTTPAddress}, "address", "a", "Net address host:port")
	fs.StringVarP(&cfg.Storage.Files.ReplicaRoot, "root", "r", "", "Directory served as a replica")
	fs.StringVar(&cfg.Auth.PasswordHash, "password-hash", "", "Bcrypt hash of the replica password")
	fs.StringVar(&cfg.Auth.TokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&cfg.Auth.TokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&cfg.Auth.TokenDuration, "token-duration", 0, "Token duration (e.g., 1h, 30m)")
	fs.DurationVar(&cfg.Server.RequestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVarP(&cfg.JSONFilePath, "config", "c", "", "JSON config file path")

	return cfg
}

// BindClientFlags registers the client flags on fs, typically the persistent
// flags of the root command.
//
// Flags:
//
//	-d, --db                 profile database file
//	    --log-file           log file path
//	    --request-timeout    replica server request timeout
//	    --max-auth-attempts  passwords asked per remote root
//	-c, --config             json file path with configs
func BindClientFlags(fs *pflag.FlagSet) *StructuredConfig {
	cfg := &StructuredConfig{}

	fs.StringVarP(&cfg.Storage.DB.DSN, "db", "d", "", "Profile database file")
	fs.StringVar(&cfg.App.LogFile, "log-file", "", "Log file path")
	fs.DurationVar(&cfg.Adapter.RequestTimeout, "request-timeout", 0, "Replica server request timeout (e.g., 30s)")
	fs.IntVar(&cfg.App.MaxAuthAttempts, "max-auth-attempts", 0, "Passwords asked per remote root")
	fs.StringVarP(&cfg.JSONFilePath, "config", "c", "", "JSON config file path")

	return cfg
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is
// "localhost" or empty, and returns an error if the format or values are
// invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	if a.target != nil {
		*a.target = a.String()
	}
	return nil
}

// Type implements pflag.Value.
func (a *NetAddress) Type() string {
	return "host:port"
}
