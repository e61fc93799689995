package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"
)

func (rs *RestfulServer) DevicePoll(c *gin.Context) {
	deviceID := c.Param("device_id")

	if !rs.CheckDeviceLimiter(deviceID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	state, err := rs.Alarm.Gateway.Poll(deviceID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"state": state})
}

func (rs *RestfulServer) DeviceScan(c *gin.Context) {
	deviceID := c.Param("device_id")

	if !rs.CheckDeviceLimiter(deviceID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	payload, err := c.GetRawData()
	if err != nil || len(payload) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty scan payload"})
		return
	}

	result, err := rs.Alarm.Gateway.SubmitScan(deviceID, payload)
	if err != nil {
		c.JSON(http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

type BindRequest struct {
	OwnerID string `json:"owner_id"`
}

var bindRequestSchema = z.Struct(z.Shape{
	"OwnerID": z.String().Required(),
})

func (rs *RestfulServer) BindDevice(c *gin.Context) {
	deviceID := c.Param("device_id")

	var req BindRequest
	if err := bindRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	if err := rs.Alarm.Gateway.Bind(deviceID, req.OwnerID); err != nil {
		c.JSON(http.StatusInternalServerError, err)
		return
	}

	c.Status(http.StatusOK)
}

type SetAlarmRequest struct {
	Hour     int    `json:"hour"`
	Minute   int    `json:"minute"`
	Timezone string `json:"timezone"`
}

var setAlarmRequestSchema = z.Struct(z.Shape{
	"Hour":     z.Int().GTE(0).LTE(23),
	"Minute":   z.Int().GTE(0).LTE(59),
	"Timezone": z.String().Required(),
})

func (rs *RestfulServer) SetAlarm(c *gin.Context) {
	ownerID := c.Param("owner_id")

	var req SetAlarmRequest
	if err := setAlarmRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	config, err := rs.Alarm.Scheduler.SetAlarm(ownerID, req.Hour, req.Minute, req.Timezone)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status, err := rs.Alarm.Scheduler.Status(config.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

func (rs *RestfulServer) AlarmStatus(c *gin.Context) {
	ownerID := c.Param("owner_id")

	config, err := rs.Alarm.Scheduler.GetOwnerConfig(ownerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusOK, gin.H{"state": "idle"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, err)
		return
	}

	status, err := rs.Alarm.Scheduler.Status(config.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

func (rs *RestfulServer) CancelAlarm(c *gin.Context) {
	ownerID := c.Param("owner_id")

	cancelled, err := rs.Alarm.Scheduler.CancelOwner(ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cancelled": cancelled})
}

func (rs *RestfulServer) WakeupStats(c *gin.Context) {
	ownerID := c.Param("owner_id")

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = parsed
	}

	summary, err := rs.Alarm.Stats.Summary(ownerID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

type LimiterRequest struct {
	Rate  float64 `json:"rate"`
	Burst int     `json:"burst"`
}

var limiterRequestSchema = z.Struct(z.Shape{
	"rate":  z.Float64().Required(),
	"burst": z.Int().Required(),
})

func (rs *RestfulServer) PostLimiter(c *gin.Context) {
	deviceID := c.Param("device_id")

	var req LimiterRequest
	if err := limiterRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	rs.SetLimiter(deviceID, req.Rate, req.Burst)

	c.Status(http.StatusOK)
}

func (rs *RestfulServer) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
