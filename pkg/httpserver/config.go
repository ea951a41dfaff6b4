package httpserver

import (
	"errors"
	"log/slog"
	"time"
)

var (
	ErrStart          = errors.New("httpserver: failed to start")
	ErrShutdown       = errors.New("httpserver: graceful shutdown failed")
	ErrAlreadyRunning = errors.New("httpserver: already running")
)

// Config is read from HTTP_* environment variables.
type Config struct {
	Addr            string        `env:"HTTP_ADDR" envDefault:":8080"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
	IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"120s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"5s"` // ShutdownTimeout bounds draining of in-flight requests.
}

type Option func(*config)

// WithAddr sets the listen address. An empty addr panics.
func WithAddr(addr string) Option {
	if addr == "" {
		panic("httpserver: empty listen address")
	}
	return func(c *config) { c.addr = addr }
}

// WithTimeouts sets the read, write and idle timeouts of the underlying
// http.Server. Zero leaves a timeout disabled.
func WithTimeouts(read, write, idle time.Duration) Option {
	return func(c *config) {
		c.readTimeout, c.writeTimeout, c.idleTimeout = read, write, idle
	}
}

// WithShutdownTimeout bounds graceful shutdown. It must be positive.
func WithShutdownTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("httpserver: shutdown timeout must be positive")
	}
	return func(c *config) { c.shutdownTimeout = d }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewFromConfig creates a Server from cfg followed by opts. Empty or zero
// fields keep the defaults.
func NewFromConfig(cfg Config, opts ...Option) *Server {
	base := []Option{WithTimeouts(cfg.ReadTimeout, cfg.WriteTimeout, cfg.IdleTimeout)}
	if cfg.Addr != "" {
		base = append(base, WithAddr(cfg.Addr))
	}
	if cfg.ShutdownTimeout > 0 {
		base = append(base, WithShutdownTimeout(cfg.ShutdownTimeout))
	}
	return New(append(base, opts...)...)
}
