// Package config loads utilkit configuration with Viper from a YAML file,
// a .env file and environment variables.
//
// Environment variables carrying the loader prefix override file values,
// with underscores mapped onto nested keys:
//
//	UTILKIT_REDIS_ADDR=cache:6379  ->  redis.addr
//	UTILKIT_REDIS_POOL_SIZE=20     ->  redis.pool_size
//
// # Usage
//
//	var cfg AppConfig
//	err := config.LoadConfig("utilkit", &cfg, config.WithConfigFile("config.yml"))
package config
