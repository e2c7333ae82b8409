package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	MySQL  MySQLConfig  `yaml:"mysql"`
	Redis  RedisConfig  `yaml:"redis"`
	Cache  CacheConfig  `yaml:"cache"`
	Group  GroupConfig  `yaml:"group"`
	Log    LogConfig    `yaml:"log"`
}

// ServerConfig holds HTTP and gRPC listener settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	GRPCPort        int           `yaml:"grpc_port"        env:"SERVER_GRPC_PORT"        env-default:"50051"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

// MySQLConfig holds the relational store connection settings.
type MySQLConfig struct {
	DSN             string        `yaml:"dsn"               env:"MYSQL_DSN"               env-required:"true"`
	MaxOpenConns    int           `yaml:"max_open_conns"    env:"MYSQL_MAX_OPEN_CONNS"    env-default:"50"`
	MaxIdleConns    int           `yaml:"max_idle_conns"    env:"MYSQL_MAX_IDLE_CONNS"    env-default:"25"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env:"MYSQL_CONN_MAX_LIFETIME" env-default:"5m"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"      env:"REDIS_ADDR"      env-default:"localhost:6379"`
	Password string `yaml:"password"  env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db"        env:"REDIS_DB"        env-default:"0"`
	PoolSize int    `yaml:"pool_size" env:"REDIS_POOL_SIZE" env-default:"100"`
}

// CacheConfig controls the clothing category cache.
type CacheConfig struct {
	CategoryTTL time.Duration `yaml:"category_ttl" env:"CACHE_CATEGORY_TTL" env-default:"1h"`
	KeyPrefix   string        `yaml:"key_prefix"   env:"CACHE_KEY_PREFIX"   env-default:"stock:"`
}

type GroupConfig struct {
	TokenAttempts int `yaml:"token_attempts" env:"GROUP_TOKEN_ATTEMPTS" env-default:"3"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
