package mosespg

import (
	"context"
	"crypto/tls"
	"net"

	"github.com/jec/moses-pg/tracelog"
)

// Config is the configuration bundle the Connection Façade accepts
// (SPEC_FULL.md §6). Parsing one out of PGHOST/PGPORT/... environment
// variables, a .pgpass file, or a connection URL is an external
// collaborator's job (spec.md §1); Config is the plain struct those
// collaborators would build and hand to Connect.
type Config struct {
	// Host is a hostname, IP address, or path to a unix socket directory
	// (e.g. "/tmp" for "/tmp/.s.PGSQL.<port>").
	Host string
	Port uint16 // default 5432
	User string // default OS login
	Password string
	Database string

	TLSConfig *tls.Config

	// DialFunc overrides how the TCP/unix connection is made; nil uses
	// net.Dial.
	DialFunc func(network, address string) (net.Conn, error)

	// Logger receives the engine's internal diagnostics: transport errors at
	// Error level and error responses with no operation in flight at Debug
	// level (SPEC_FULL.md §4.9.1). Nil disables logging entirely. Messages
	// whose level is above LogLevel are dropped, so the zero LogLevel drops
	// all of them.
	Logger   tracelog.Logger
	LogLevel tracelog.LogLevel
}

func (cfg *Config) dial(network, address string) (net.Conn, error) {
	if cfg.DialFunc != nil {
		return cfg.DialFunc(network, address)
	}
	return net.Dial(network, address)
}

func (cfg *Config) log(c *Conn, level tracelog.LogLevel, msg string, data map[string]any) {
	if cfg.Logger == nil || level > cfg.LogLevel {
		return
	}
	cfg.Logger.Log(context.Background(), level, msg, data)
}
