package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"wakeqr.xyz/smart-alarm-service/pkg/alarm"
	"wakeqr.xyz/smart-alarm-service/pkg/common"
	"wakeqr.xyz/smart-alarm-service/pkg/db"
	alarmHttp "wakeqr.xyz/smart-alarm-service/pkg/http"
)

func main() {
	var err error

	err = godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file, copy .env.example to .env first if in development")
	}

	var dbInstance *db.DB
	alarmDbType := os.Getenv(common.EnvKeyAlarmDBType)
	switch alarmDbType {
	case "file":
		dbInstance = db.GetInstance(db.UseSqliteDialector())
	case "memory":
		dbInstance = db.GetInstance(db.UseMemorySqliteDialector())
	default:
		log.Fatal("Unknown ALARM_DB_TYPE: " + alarmDbType)
	}

	httpHostPort := strings.TrimSpace(os.Getenv(common.EnvKeyAlarmHttpHostPort))

	var defaultRate float64
	var defaultBurst int64

	if defaultRate, err = strconv.ParseFloat(os.Getenv(common.EnvKeyAlarmDefaultRate), 64); err != nil {
		log.Fatal("Invalid ALARM_DEFAULT_RATE, or not set in .env, should be a float64 value")
	}

	if defaultBurst, err = strconv.ParseInt(os.Getenv(common.EnvKeyAlarmDefaultBurst), 10, 64); err != nil {
		log.Fatal("Invalid ALARM_DEFAULT_BURST, or not set in .env, should be an int value")
	}

	tickSeconds := int64(2)
	if raw := strings.TrimSpace(os.Getenv(common.EnvKeyAlarmTickSeconds)); raw != "" {
		if tickSeconds, err = strconv.ParseInt(raw, 10, 64); err != nil || tickSeconds <= 0 {
			log.Fatal("Invalid ALARM_TICK_SECONDS, should be a positive int value")
		}
	}

	logger := common.GetLogger()

	alarmCore := alarm.Engine{
		Db:     *dbInstance,
		Policy: alarm.DefaultPolicy(),
	}
	alarmCore.WithServices(alarm.ServiceOpts{
		Session:   alarmCore.GetISession(),
		Scheduler: alarmCore.GetIScheduler(),
		Challenge: alarmCore.GetIChallenge(),
		Gateway:   alarmCore.GetIGateway(),
		Stats:     alarmCore.GetIStats(),
	})

	runner := alarmCore.NewRunner(time.Duration(tickSeconds) * time.Second)
	runner.Start()
	defer runner.Stop()
	logger.Info("Alarm runner started with:",
		zap.String("tick", fmt.Sprintf("%ds", tickSeconds)))

	if httpHostPort == "" {
		// fallback to default http port
		httpHostPort = ":1080"
	}

	logger.Info("Starting HTTP server on port " + httpHostPort)
	rs := &alarmHttp.RestfulServer{
		Server:           gin.Default(),
		Alarm:            &alarmCore,
		RateLimiterStore: alarm.NewRateLimiterStore(rate.Limit(defaultRate), int(defaultBurst)),
	}
	rs.Setup()

	logger.Info("http server created with:",
		zap.String("default_limiter",
			fmt.Sprintf("{\"default_rate\": %v, \"default_burst\": %v}", defaultRate, defaultBurst)))

	logger.Info("Starting HTTP server on: " + httpHostPort)
	if err := rs.Server.Run(httpHostPort); err != nil {
		log.Fatalf("http server failed to serve: %v", err)
	}
}
