package config

const (
	DefaultServiceName = "hunter-server"

	EnvDev        = "dev"
	EnvProduction = "production"

	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)
