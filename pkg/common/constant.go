package common

const (
	EnvKeyGoEnv string = "GO_ENV"

	EnvKeyRunIntegrationTests string = "RUN_INTEGRATION_TESTS"

	EnvKeyAlarmDBType string = "ALARM_DB_TYPE"
	EnvKeyAlarmDbPath string = "ALARM_DB_PATH"

	EnvKeyAlarmHttpHostPort string = "ALARM_HTTP_HOST_PORT"

	EnvKeyAlarmDefaultRate  string = "ALARM_DEFAULT_RATE"
	EnvKeyAlarmDefaultBurst string = "ALARM_DEFAULT_BURST"

	EnvKeyAlarmTickSeconds string = "ALARM_TICK_SECONDS"

	LoggerNameAlarmCore      string = "alarm_core"
	LoggerNameRestfulServer  string = "restful_server"
	LoggerFieldAlarmCategory string = "category"
	LoggerCategoryScheduler  string = "scheduler"
	LoggerCategorySession    string = "session"
	LoggerCategoryChallenge  string = "challenge"
	LoggerCategoryGateway    string = "gateway"
	LoggerCategoryStats      string = "stats"
)
