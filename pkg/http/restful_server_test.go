package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"wakeqr.xyz/smart-alarm-service/pkg/alarm/mocks"
	_ "wakeqr.xyz/smart-alarm-service/pkg/testing"

	"wakeqr.xyz/smart-alarm-service/pkg/alarm"
	"wakeqr.xyz/smart-alarm-service/pkg/common"
	"wakeqr.xyz/smart-alarm-service/pkg/db"
	"wakeqr.xyz/smart-alarm-service/pkg/models"
)

type serverClock struct {
	now time.Time
}

func (c *serverClock) Now() time.Time { return c.now }

func setupTestServer() (*RestfulServer, *serverClock) {
	clk := &serverClock{now: time.Date(2026, 3, 9, 7, 0, 0, 0, time.UTC)}

	engine := &alarm.Engine{
		Db:     *db.GetInstance(db.UseMemorySqliteDialector()),
		Policy: alarm.DefaultPolicy(),
		Now:    clk.Now,
	}
	engine.WithServices(alarm.ServiceOpts{
		Session:   engine.GetISession(),
		Scheduler: engine.GetIScheduler(),
		Challenge: engine.GetIChallenge(),
		Gateway:   engine.GetIGateway(),
		Stats:     engine.GetIStats(),
	})

	rs := &RestfulServer{
		Server: gin.Default(),
		Alarm:  engine,
		// default we use no limiter, if need, later assign rs.RateLimiterStore = alarm.NewRateLimiterStore(...)
	}

	rs.Setup()

	return rs, clk
}

func postJSON(rs *RestfulServer, path string, body any) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest("POST", path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	rs.Server.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	rs, _ := setupTestServer()

	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()

	rs.Server.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestSetAlarmAndStatus(t *testing.T) {
	common.SetTestLoggerNop()

	rs, _ := setupTestServer()
	ownerID := uuid.NewString()

	w := postJSON(rs, "/owners/"+ownerID+"/alarm", SetAlarmRequest{
		Hour: 7, Minute: 30, Timezone: "UTC",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var status models.AlarmStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, "scheduled", status.State)
	require.NotNil(t, status.NextTrigger)

	statusReq := httptest.NewRequest("GET", "/owners/"+ownerID+"/alarm", nil)
	statusW := httptest.NewRecorder()
	rs.Server.ServeHTTP(statusW, statusReq)

	assert.Equal(t, http.StatusOK, statusW.Code)
	require.NoError(t, json.Unmarshal(statusW.Body.Bytes(), &status))
	assert.Equal(t, "scheduled", status.State)
}

func TestSetAlarm_EdgeCases(t *testing.T) {
	common.SetTestLoggerNop()

	rs, _ := setupTestServer()
	ownerID := uuid.NewString()

	{
		// empty payload should be rejected
		req := httptest.NewRequest("POST", "/owners/"+ownerID+"/alarm", bytes.NewReader([]byte("{}")))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		rs.Server.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}

	{
		w := postJSON(rs, "/owners/"+ownerID+"/alarm", SetAlarmRequest{
			Hour: 25, Minute: 0, Timezone: "UTC",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}

	{
		w := postJSON(rs, "/owners/"+ownerID+"/alarm", SetAlarmRequest{
			Hour: 7, Minute: 30, Timezone: "Mars/Olympus",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
}

func TestStatusForUnknownOwnerIsIdle(t *testing.T) {
	common.SetTestLoggerNop()

	rs, _ := setupTestServer()

	req := httptest.NewRequest("GET", "/owners/"+uuid.NewString()+"/alarm", nil)
	w := httptest.NewRecorder()
	rs.Server.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"state":"idle"}`, w.Body.String())
}

func TestDeviceRingAndDismissFlow(t *testing.T) {
	common.SetTestLoggerNop()

	rs, clk := setupTestServer()
	ownerID := uuid.NewString()
	deviceID := uuid.NewString()

	w := postJSON(rs, "/device/"+deviceID+"/bind", BindRequest{OwnerID: ownerID})
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(rs, "/owners/"+ownerID+"/alarm", SetAlarmRequest{
		Hour: 7, Minute: 30, Timezone: "UTC",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// Before the trigger the device idles.
	pollW := httptest.NewRecorder()
	rs.Server.ServeHTTP(pollW, httptest.NewRequest("GET", "/device/"+deviceID+"/poll", nil))
	require.Equal(t, http.StatusOK, pollW.Code)
	assert.JSONEq(t, `{"state":"idle"}`, pollW.Body.String())

	clk.now = time.Date(2026, 3, 9, 7, 30, 2, 0, time.UTC)
	rs.Alarm.Scheduler.Evaluate(clk.now)

	pollW = httptest.NewRecorder()
	rs.Server.ServeHTTP(pollW, httptest.NewRequest("GET", "/device/"+deviceID+"/poll", nil))
	require.Equal(t, http.StatusOK, pollW.Code)
	assert.JSONEq(t, `{"state":"ring"}`, pollW.Body.String())

	var session models.AlarmSession
	require.NoError(t, rs.Alarm.Db.Conn.
		Where("state = ? AND config_id IN (?)",
			models.SessionStateAwaitingDismissal,
			rs.Alarm.Db.Conn.Model(&models.AlarmConfig{}).Select("id").Where("owner_id = ?", ownerID)).
		First(&session).Error)

	clk.now = clk.now.Add(30 * time.Second)

	scanReq := httptest.NewRequest("POST", "/device/"+deviceID+"/scan", bytes.NewReader([]byte(session.ChallengeToken)))
	scanW := httptest.NewRecorder()
	rs.Server.ServeHTTP(scanW, scanReq)
	require.Equal(t, http.StatusOK, scanW.Code)

	var result models.ScanResult
	require.NoError(t, json.Unmarshal(scanW.Body.Bytes(), &result))
	assert.Equal(t, models.ScanActionStop, result.Action)
	require.NotNil(t, result.WakeSeconds)
	assert.Equal(t, int64(30), *result.WakeSeconds)

	pollW = httptest.NewRecorder()
	rs.Server.ServeHTTP(pollW, httptest.NewRequest("GET", "/device/"+deviceID+"/poll", nil))
	require.Equal(t, http.StatusOK, pollW.Code)
	assert.JSONEq(t, `{"state":"idle"}`, pollW.Body.String())

	// Stats reflect the dismissal.
	statsW := httptest.NewRecorder()
	rs.Server.ServeHTTP(statsW, httptest.NewRequest("GET", "/owners/"+ownerID+"/stats", nil))
	require.Equal(t, http.StatusOK, statsW.Code)

	var summary models.WakeupSummary
	require.NoError(t, json.Unmarshal(statsW.Body.Bytes(), &summary))
	assert.Equal(t, 1, summary.Count)
	assert.Equal(t, int64(30), summary.BestSeconds)
}

func TestDeviceScan_EdgeCases(t *testing.T) {
	common.SetTestLoggerNop()

	rs, _ := setupTestServer()
	deviceID := uuid.NewString()

	{
		// empty body should be rejected
		req := httptest.NewRequest("POST", "/device/"+deviceID+"/scan", nil)
		w := httptest.NewRecorder()
		rs.Server.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}

	{
		// unknown device keeps ringing semantics without error
		req := httptest.NewRequest("POST", "/device/"+deviceID+"/scan", bytes.NewReader([]byte("alarm_000000000000")))
		w := httptest.NewRecorder()
		rs.Server.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)

		var result models.ScanResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.Equal(t, models.ScanActionContinue, result.Action)
	}
}

func TestCancelAlarmStopsRinging(t *testing.T) {
	common.SetTestLoggerNop()

	rs, clk := setupTestServer()
	ownerID := uuid.NewString()
	deviceID := uuid.NewString()

	w := postJSON(rs, "/device/"+deviceID+"/bind", BindRequest{OwnerID: ownerID})
	require.Equal(t, http.StatusOK, w.Code)
	w = postJSON(rs, "/owners/"+ownerID+"/alarm", SetAlarmRequest{Hour: 7, Minute: 30, Timezone: "UTC"})
	require.Equal(t, http.StatusOK, w.Code)

	clk.now = time.Date(2026, 3, 9, 7, 30, 2, 0, time.UTC)
	rs.Alarm.Scheduler.Evaluate(clk.now)

	cancelW := httptest.NewRecorder()
	rs.Server.ServeHTTP(cancelW, httptest.NewRequest("DELETE", "/owners/"+ownerID+"/alarm", nil))
	require.Equal(t, http.StatusOK, cancelW.Code)
	assert.JSONEq(t, `{"cancelled":true}`, cancelW.Body.String())

	pollW := httptest.NewRecorder()
	rs.Server.ServeHTTP(pollW, httptest.NewRequest("GET", "/device/"+deviceID+"/poll", nil))
	require.Equal(t, http.StatusOK, pollW.Code)
	assert.JSONEq(t, `{"state":"idle"}`, pollW.Body.String())
}

func TestWakeupStats_EdgeCases(t *testing.T) {
	common.SetTestLoggerNop()

	{
		rs, _ := setupTestServer()
		req := httptest.NewRequest("GET", "/owners/"+uuid.NewString()+"/stats?limit=abc", nil)
		w := httptest.NewRecorder()
		rs.Server.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}

	{
		rs, _ := setupTestServer()
		ownerID := uuid.NewString()
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		mockIStats := mocks.NewMockIStats(ctrl)
		rs.Alarm.Stats = mockIStats
		mockIStats.EXPECT().
			Summary(gomock.Eq(ownerID), gomock.Eq(0)).
			Return(nil, fmt.Errorf("just causing error")).
			Times(1)

		req := httptest.NewRequest("GET", "/owners/"+ownerID+"/stats", nil)
		w := httptest.NewRecorder()
		rs.Server.ServeHTTP(w, req)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	}
}

func setupTestServerWithLimiter(limiter *alarm.RateLimiterStore) (*RestfulServer, *serverClock) {
	rs, clk := setupTestServer()
	rs.RateLimiterStore = limiter
	return rs, clk
}

func TestDeviceEndpointsWithLimiter(t *testing.T) {
	common.SetTestLoggerNop()

	rs, _ := setupTestServerWithLimiter(alarm.NewRateLimiterStore(2, 2))

	deviceID := uuid.NewString()

	// Simulate 3 polls in quick succession — only 2 should be allowed
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("GET", "/device/"+deviceID+"/poll", nil)
		w := httptest.NewRecorder()
		rs.Server.ServeHTTP(w, req)

		if i < 2 {
			require.Equal(t, http.StatusOK, w.Code, "request %d should be allowed", i+1)
		} else {
			require.Equal(t, http.StatusTooManyRequests, w.Code, "request %d should be rate limited", i+1)
		}
	}

	// Raising the device's budget lets it through again.
	w := postJSON(rs, "/device/"+deviceID+"/limiter", LimiterRequest{Rate: 10, Burst: 10})
	require.Equal(t, http.StatusOK, w.Code)

	req := httptest.NewRequest("GET", "/device/"+deviceID+"/poll", nil)
	pollW := httptest.NewRecorder()
	rs.Server.ServeHTTP(pollW, req)
	require.Equal(t, http.StatusOK, pollW.Code)
}

func TestPostLimiter_EdgeCases(t *testing.T) {
	common.SetTestLoggerNop()

	rs, _ := setupTestServerWithLimiter(alarm.NewRateLimiterStore(2, 2))

	deviceID := uuid.NewString()

	// empty payload should be rejected
	req := httptest.NewRequest("POST", "/device/"+deviceID+"/limiter", bytes.NewReader([]byte("{}")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	rs.Server.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSetLimiterWithoutStoreIsNoop(t *testing.T) {
	common.SetTestLoggerNop()

	rs, _ := setupTestServer() // default without limiter store

	deviceID := uuid.NewString()

	w := postJSON(rs, "/device/"+deviceID+"/limiter", LimiterRequest{Rate: 2, Burst: 2})
	require.Equal(t, http.StatusOK, w.Code, "limiter request should be allowed")

	req := httptest.NewRequest("GET", "/device/"+deviceID+"/poll", nil)
	pollW := httptest.NewRecorder()
	rs.Server.ServeHTTP(pollW, req)
	assert.Equal(t, http.StatusOK, pollW.Code)
	assert.JSONEq(t, `{"state":"idle"}`, pollW.Body.String())
}
