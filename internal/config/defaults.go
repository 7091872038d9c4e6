package config

const (
	defaultConfigPath     = "~/.config/rdbsql/config.toml"
	projectConfigName     = "rdbsql.toml"
	defaultRDBDir         = "./rdb"
	defaultOutput         = "libretrodb.sqlite"
	defaultLibretroDBTool = "libretrodb_tool"
	defaultToolTimeout    = 120
	defaultDatasetKey     = KeyMD5
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Dataset key values accepted in [dataset].key.
const (
	KeyMD5    = "md5"
	KeySerial = "serial"
)

// Environment variables that override file values.
const (
	EnvLibretroDBTool = "RDBSQL_LIBRETRODB_TOOL"
	EnvRDBDir         = "RDBSQL_RDB_DIR"
	EnvOutput         = "RDBSQL_OUTPUT"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			RDBDir: defaultRDBDir,
			Output: defaultOutput,
		},
		Tool: Tool{
			LibretroDBTool: defaultLibretroDBTool,
			TimeoutSeconds: defaultToolTimeout,
		},
		Dataset: Dataset{
			Key: defaultDatasetKey,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
