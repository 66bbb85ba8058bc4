package config

import (
	"errors"
	"net"
	"strings"
	"time"
)

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	// Host is empty to listen on all interfaces.
	Host string
	// Port accepts both ":8080" and "8080".
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	MaxHeaderBytes  int
}

// LoadServerConfigFromEnv reads SERVER_* variables.
func LoadServerConfigFromEnv() ServerConfig {
	return ServerConfig{
		Host:            GetEnv("SERVER_HOST", ""),
		Port:            GetEnv("SERVER_PORT", ":8080"),
		ReadTimeout:     GetEnvDuration("SERVER_READ_TIMEOUT", 10*time.Second),
		WriteTimeout:    GetEnvDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
		IdleTimeout:     GetEnvDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
		ShutdownTimeout: GetEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 15*time.Second),
		MaxHeaderBytes:  GetEnvInt("SERVER_MAX_HEADER_BYTES", 1<<20),
	}
}

// Address returns the listen address for http.Server.
func (c ServerConfig) Address() string {
	if c.Host == "" {
		return c.Port
	}
	return net.JoinHostPort(c.Host, strings.TrimPrefix(c.Port, ":"))
}

// Validate reports every invalid setting at once.
func (c ServerConfig) Validate() error {
	var errs []error
	if c.ReadTimeout <= 0 {
		errs = append(errs, errors.New("ReadTimeout must be greater than 0"))
	}
	if c.WriteTimeout <= 0 {
		errs = append(errs, errors.New("WriteTimeout must be greater than 0"))
	}
	if c.IdleTimeout <= 0 {
		errs = append(errs, errors.New("IdleTimeout must be greater than 0"))
	}
	if c.ShutdownTimeout < 0 {
		errs = append(errs, errors.New("ShutdownTimeout must not be negative"))
	}
	if c.MaxHeaderBytes < 0 {
		errs = append(errs, errors.New("MaxHeaderBytes must not be negative"))
	}
	return errors.Join(errs...)
}
