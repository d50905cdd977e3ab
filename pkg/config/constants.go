package config

const (
	EnvPrefix = "PEDIDOS"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	EnvDBDSN  = "PEDIDOS_DB_DSN"
	EnvDBHost = "PEDIDOS_DB_HOST"
	EnvDBUser = "PEDIDOS_DB_USER"
	EnvDBName = "PEDIDOS_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
