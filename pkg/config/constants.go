package config

// EnvPrefix is the envconfig prefix shared by every BLITZ_* variable.
const EnvPrefix = "BLITZ"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "BLITZ_DB_DSN"
	EnvDBHost = "BLITZ_DB_HOST"
	EnvDBUser = "BLITZ_DB_USER"
	EnvDBName = "BLITZ_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
