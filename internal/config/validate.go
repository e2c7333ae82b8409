package config

import (
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// Validate checks the loaded configuration. Load calls it automatically.
func (c *Config) Validate() error {
	if err := validPort(c.Server.Port); err != nil {
		return fmt.Errorf("server.port: %w", err)
	}
	if err := validPort(c.Server.GRPCPort); err != nil {
		return fmt.Errorf("server.grpc_port: %w", err)
	}
	if c.Server.Port == c.Server.GRPCPort {
		return fmt.Errorf("server.port and server.grpc_port must differ (both %d)", c.Server.Port)
	}

	dsn, err := mysql.ParseDSN(c.MySQL.DSN)
	if err != nil {
		return fmt.Errorf("mysql.dsn: %w", err)
	}
	if !dsn.ParseTime {
		return fmt.Errorf("mysql.dsn must set parseTime=true")
	}
	if c.MySQL.MaxOpenConns <= 0 {
		return fmt.Errorf("mysql.max_open_conns must be > 0 (got %d)", c.MySQL.MaxOpenConns)
	}
	if c.MySQL.MaxIdleConns < 0 || c.MySQL.MaxIdleConns > c.MySQL.MaxOpenConns {
		return fmt.Errorf("mysql.max_idle_conns must be between 0 and max_open_conns (got %d)", c.MySQL.MaxIdleConns)
	}

	if strings.TrimSpace(c.Redis.Addr) == "" {
		return fmt.Errorf("redis.addr is required")
	}
	if c.Redis.PoolSize <= 0 {
		return fmt.Errorf("redis.pool_size must be > 0 (got %d)", c.Redis.PoolSize)
	}

	if c.Cache.CategoryTTL <= 0 {
		return fmt.Errorf("cache.category_ttl must be > 0 (got %s)", c.Cache.CategoryTTL)
	}
	if c.Group.TokenAttempts < 1 {
		return fmt.Errorf("group.token_attempts must be >= 1 (got %d)", c.Group.TokenAttempts)
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	return nil
}

func validPort(p int) error {
	if p <= 0 || p > 65535 {
		return fmt.Errorf("must be between 1 and 65535 (got %d)", p)
	}
	return nil
}

// Addr returns the HTTP listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// GRPCAddr returns the gRPC listen address.
func (s ServerConfig) GRPCAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.GRPCPort)
}
