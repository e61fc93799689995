package alarm

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wakeqr.xyz/smart-alarm-service/pkg/common"
	"wakeqr.xyz/smart-alarm-service/pkg/models"
	_ "wakeqr.xyz/smart-alarm-service/pkg/testing"
)

func seedRingingSession(t *testing.T, engine *Engine, now time.Time) *models.AlarmSession {
	config := models.AlarmConfig{
		OwnerID:  uuid.NewString(),
		Hour:     7,
		Minute:   30,
		Timezone: "UTC",
		Enabled:  true,
	}
	require.NoError(t, engine.Db.Conn.Create(&config).Error)

	triggeredAt := now
	session := models.AlarmSession{
		ID:          uuid.NewString(),
		ConfigID:    config.ID,
		State:       models.SessionStateRinging,
		ArmedAt:     now,
		TriggeredAt: &triggeredAt,
	}
	require.NoError(t, engine.Db.Conn.Create(&session).Error)
	return &session
}

func TestIssueAndVerify(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, engine, _, _ := GetMockEngineWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	now := time.Date(2026, 3, 9, 7, 30, 0, 0, time.UTC)
	engine.Now = func() time.Time { return now }

	session := seedRingingSession(t, engine, now)

	token, err := engine.Challenge.Issue(session.ID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(token, "alarm_"))
	assert.Len(t, token, len("alarm_")+12)

	refreshed, err := engine.Session.GetSession(session.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionStateAwaitingDismissal, refreshed.State)
	assert.Equal(t, token, refreshed.ChallengeToken)

	match, err := engine.Challenge.Verify(session.ID, token)
	require.NoError(t, err)
	assert.True(t, match)

	match, err = engine.Challenge.Verify(session.ID, "alarm_ffffffffffff")
	require.NoError(t, err)
	assert.False(t, match)
}

func TestIssueRotationInvalidatesOldToken(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, engine, _, _ := GetMockEngineWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	now := time.Date(2026, 3, 9, 7, 30, 0, 0, time.UTC)
	engine.Now = func() time.Time { return now }

	session := seedRingingSession(t, engine, now)

	oldToken, err := engine.Challenge.Issue(session.ID)
	require.NoError(t, err)

	newToken, err := engine.Challenge.Issue(session.ID)
	require.NoError(t, err)
	require.NotEqual(t, oldToken, newToken)

	match, err := engine.Challenge.Verify(session.ID, oldToken)
	require.NoError(t, err)
	assert.False(t, match)

	match, err = engine.Challenge.Verify(session.ID, newToken)
	require.NoError(t, err)
	assert.True(t, match)
}

func TestVerifyExpiredToken(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, engine, _, _ := GetMockEngineWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	now := time.Date(2026, 3, 9, 7, 30, 0, 0, time.UTC)
	engine.Now = func() time.Time { return now }

	session := seedRingingSession(t, engine, now)

	token, err := engine.Challenge.Issue(session.ID)
	require.NoError(t, err)

	now = now.Add(engine.Policy.TokenTTL + time.Minute)

	match, err := engine.Challenge.Verify(session.ID, token)
	require.NoError(t, err)
	assert.False(t, match)
}

func TestIssueOnTerminalSessionFails(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, engine, _, _ := GetMockEngineWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	now := time.Date(2026, 3, 9, 7, 30, 0, 0, time.UTC)
	engine.Now = func() time.Time { return now }

	session := seedRingingSession(t, engine, now)

	cancelled, err := engine.Scheduler.Cancel(session.ID)
	require.NoError(t, err)
	require.True(t, cancelled)

	_, err = engine.Challenge.Issue(session.ID)
	require.Error(t, err)
}

func TestVerifyUnknownSession(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, engine, _, _ := GetMockEngineWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	match, err := engine.Challenge.Verify(uuid.NewString(), "alarm_000000000000")
	require.NoError(t, err)
	assert.False(t, match)
}
