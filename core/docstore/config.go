package docstore

// Config holds configuration for the Redis server backing shared documents.
type Config struct {
	// Addr is the host:port of the Redis server.
	Addr string `mapstructure:"addr" default:"localhost:6379"`
	// Password authenticates the connection.
	Password string `mapstructure:"password" default:""`
	// DB selects the logical database.
	DB int `mapstructure:"db" default:"0"`
	// KeyPrefix namespaces every document key.
	KeyPrefix string `mapstructure:"key_prefix" default:"rgw"`
}
