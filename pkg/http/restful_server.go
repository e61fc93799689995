package http

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
	"wakeqr.xyz/smart-alarm-service/pkg/alarm"
)

type RestfulServer struct {
	Server           *gin.Engine
	Alarm            *alarm.Engine
	RateLimiterStore *alarm.RateLimiterStore
}

func (rs *RestfulServer) GetLimiter(deviceID string) *rate.Limiter {
	if rs.RateLimiterStore == nil {
		return nil
	} else {
		return rs.RateLimiterStore.GetLimiter(deviceID)
	}
}

func (rs *RestfulServer) CheckDeviceLimiter(deviceID string) bool {
	limiter := rs.GetLimiter(deviceID)
	if limiter == nil {
		return true
	}
	return limiter.Allow()
}

func (rs *RestfulServer) SetLimiter(deviceID string, deviceRate float64, deviceBurst int) {
	if rs.RateLimiterStore == nil {
		return
	}
	rs.RateLimiterStore.SetLimiter(deviceID, rate.Limit(deviceRate), deviceBurst)
}

func (rs *RestfulServer) Setup() {
	rs.Server.GET("/healthz", rs.HealthCheck)

	device := rs.Server.Group("/device/:device_id")
	{
		device.GET("/poll", rs.DevicePoll)
		device.POST("/scan", rs.DeviceScan)
		device.POST("/bind", rs.BindDevice)
		device.POST("/limiter", rs.PostLimiter)
	}

	owners := rs.Server.Group("/owners/:owner_id")
	{
		owners.POST("/alarm", rs.SetAlarm)
		owners.GET("/alarm", rs.AlarmStatus)
		owners.DELETE("/alarm", rs.CancelAlarm)
		owners.GET("/stats", rs.WakeupStats)
	}
}
