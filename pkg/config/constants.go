package config

// EnvPrefix is passed to envconfig; each field also carries an explicit
// envconfig tag so the prefix only matters for unlabeled fields.
const EnvPrefix = "NEA"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "NEA_DB_DSN"
	EnvDBHost = "NEA_DB_HOST"
	EnvDBUser = "NEA_DB_USER"
	EnvDBName = "NEA_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
