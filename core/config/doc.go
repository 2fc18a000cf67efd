// Package config provides configuration management for the bucket manager.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file. Defaults live next to each section in `default`
// struct tags.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP admin API settings (port, API key)
//   - Database: bucket catalog connection (mysql or sqlite)
//   - Storage: S3/MinIO credentials and the pool bucket namespace
//   - Redis: shared document store holding the available-pool registry
//   - Pools: index pool, registry key, name prefix and preallocation policy
//   - Log: Logging level and format
//
// The pool policy is validated on load; an inconsistent threshold/max pair
// fails fast instead of producing a maintainer that never settles.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Pools.PreallocateMax)
package config
