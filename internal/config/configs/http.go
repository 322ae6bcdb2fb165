package configs

import "time"

// HTTP defines configuration for the HTTP server. The Port specifies
// which port the server will bind to. ShutdownTimeout bounds the graceful
// shutdown on termination; requests still running after it are dropped.
type HTTP struct {
	// Port is the TCP port the HTTP server will listen on. Defaults to 8080.
	Port uint16 `env:"PORT" envDefault:"8080"`

	// ShutdownTimeout is the grace period for in-flight requests during
	// shutdown.
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
}
