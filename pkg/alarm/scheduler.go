package alarm

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"wakeqr.xyz/smart-alarm-service/pkg/common"
	"wakeqr.xyz/smart-alarm-service/pkg/models"
)

// DateLayout is the calendar-day key used for the once-per-day firing guard.
const DateLayout = "2006-01-02"

func schedulerLogger() *zap.Logger {
	return common.GetLoggerWith(
		common.LoggerNameAlarmCore,
		zap.String(common.LoggerFieldAlarmCategory, common.LoggerCategoryScheduler),
	)
}

func (e *Engine) setAlarm(ownerID string, hour, minute int, timezone string) (*models.AlarmConfig, error) {
	logger := schedulerLogger()

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return nil, fmt.Errorf("time of day %02d:%02d out of range", hour, minute)
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}

	var config models.AlarmConfig
	err = e.Db.Conn.First(&config, "owner_id = ?", ownerID).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if config.ID != 0 {
		// Re-setting an alarm withdraws a session armed for the previous
		// schedule. Ringing sessions are left alone; cancel is explicit.
		if _, err := e.cancelArmedSessions(config.ID); err != nil {
			return nil, err
		}
	}

	config.OwnerID = ownerID
	config.Hour = hour
	config.Minute = minute
	config.Timezone = timezone
	config.Enabled = true

	now := e.now().In(loc)
	trigger := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, loc)
	if now.After(trigger.Add(e.Policy.Tolerance)) {
		// Today's trigger already passed: first fire is tomorrow.
		config.LastFiredDate = now.Format(DateLayout)
	} else {
		config.LastFiredDate = ""
	}

	if err := e.Db.Conn.Save(&config).Error; err != nil {
		return nil, err
	}

	logger.Info("Alarm set",
		zap.String("owner_id", ownerID),
		zap.Uint("config_id", config.ID),
		zap.String("time_of_day", fmt.Sprintf("%02d:%02d", hour, minute)),
		zap.String("timezone", timezone))

	return &config, nil
}

func (e *Engine) getOwnerConfig(ownerID string) (*models.AlarmConfig, error) {
	var config models.AlarmConfig
	err := e.Db.Conn.First(&config, "owner_id = ?", ownerID).Error
	return &config, err
}

// arm creates an armed session for the config, or returns the existing live
// one. The partial unique index on alarm_sessions backstops the one live
// session per config invariant if two callers race past the lookup.
func (e *Engine) arm(configID uint) (*models.AlarmSession, error) {
	var config models.AlarmConfig
	if err := e.Db.Conn.First(&config, "id = ?", configID).Error; err != nil {
		return nil, err
	}

	var live models.AlarmSession
	err := e.Db.Conn.
		Where("config_id = ? AND state IN ?", configID, models.LiveStates).
		First(&live).Error
	if err == nil {
		return &live, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	session := models.AlarmSession{
		ID:       uuid.NewString(),
		ConfigID: configID,
		State:    models.SessionStateArmed,
		ArmedAt:  e.now(),
	}
	if err := e.Db.Conn.Create(&session).Error; err != nil {
		return nil, err
	}

	schedulerLogger().Info("Session armed",
		zap.Uint("config_id", configID),
		zap.String("session_id", session.ID))

	return &session, nil
}

func (e *Engine) cancel(sessionID string) (bool, error) {
	won, err := e.transition(sessionID, models.LiveStates, models.SessionStateCancelled, map[string]any{
		"challenge_token":  "",
		"token_expires_at": nil,
	})
	if err != nil {
		return false, err
	}
	if won {
		schedulerLogger().Info("Session cancelled", zap.String("session_id", sessionID))
	}
	return won, nil
}

func (e *Engine) cancelOwner(ownerID string) (bool, error) {
	config, err := e.getOwnerConfig(ownerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	cancelled := false
	var live models.AlarmSession
	err = e.Db.Conn.
		Where("config_id = ? AND state IN ?", config.ID, models.LiveStates).
		First(&live).Error
	if err == nil {
		cancelled, err = e.cancel(live.ID)
		if err != nil {
			return false, err
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	if err := e.Db.Conn.Model(&models.AlarmConfig{}).
		Where("id = ?", config.ID).
		Update("enabled", false).Error; err != nil {
		return cancelled, err
	}

	schedulerLogger().Info("Alarm disabled",
		zap.String("owner_id", ownerID),
		zap.Bool("session_cancelled", cancelled))

	return cancelled, nil
}

func (e *Engine) cancelArmedSessions(configID uint) (int64, error) {
	res := e.Db.Conn.Model(&models.AlarmSession{}).
		Where("config_id = ? AND state = ?", configID, models.SessionStateArmed).
		Update("state", models.SessionStateCancelled)
	return res.RowsAffected, res.Error
}

func (e *Engine) status(configID uint) (*models.AlarmStatus, error) {
	var config models.AlarmConfig
	if err := e.Db.Conn.First(&config, "id = ?", configID).Error; err != nil {
		return nil, err
	}

	var live models.AlarmSession
	err := e.Db.Conn.
		Where("config_id = ? AND state IN ?", configID, models.LiveStates).
		First(&live).Error
	if err == nil {
		return &models.AlarmStatus{
			State:       string(live.State),
			SessionID:   live.ID,
			TriggeredAt: live.TriggeredAt,
		}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if !config.Enabled {
		return &models.AlarmStatus{State: "idle"}, nil
	}

	loc, err := time.LoadLocation(config.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", config.Timezone, err)
	}
	next := e.nextTrigger(&config, loc)
	return &models.AlarmStatus{State: "scheduled", NextTrigger: &next}, nil
}

func (e *Engine) nextTrigger(config *models.AlarmConfig, loc *time.Location) time.Time {
	local := e.now().In(loc)
	trigger := time.Date(local.Year(), local.Month(), local.Day(), config.Hour, config.Minute, 0, 0, loc)
	if config.LastFiredDate == local.Format(DateLayout) || local.After(trigger.Add(e.Policy.Tolerance)) {
		trigger = trigger.AddDate(0, 0, 1)
	}
	return trigger
}

// evaluate is one scheduler tick: fire due configs, then expire overdue ring
// windows. A failing config is logged and skipped, never halting the rest.
func (e *Engine) evaluate(now time.Time) {
	logger := schedulerLogger()

	var configs []models.AlarmConfig
	if err := e.Db.Conn.Where("enabled = ?", true).Find(&configs).Error; err != nil {
		logger.Error("Failed to load alarm configs", zap.Error(err))
		return
	}

	for i := range configs {
		if err := e.evaluateConfig(&configs[i], now); err != nil {
			logger.Warn("Skipping alarm config",
				zap.Uint("config_id", configs[i].ID),
				zap.Error(err))
		}
	}

	e.expireOverdueSessions(now)
}

func (e *Engine) evaluateConfig(config *models.AlarmConfig, now time.Time) error {
	loc, err := time.LoadLocation(config.Timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", config.Timezone, err)
	}

	local := now.In(loc)
	trigger := time.Date(local.Year(), local.Month(), local.Day(), config.Hour, config.Minute, 0, 0, loc)
	if local.Before(trigger) || local.After(trigger.Add(e.Policy.Tolerance)) {
		return nil
	}

	today := local.Format(DateLayout)
	if config.LastFiredDate == today {
		return nil
	}

	var live models.AlarmSession
	err = e.Db.Conn.
		Where("config_id = ? AND state IN ?", config.ID, models.RingingStates).
		First(&live).Error
	if err == nil {
		// Already ringing for this trigger.
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	// Claim the calendar trigger before firing so two ticks racing on the
	// same minute cannot both ring.
	res := e.Db.Conn.Model(&models.AlarmConfig{}).
		Where("id = ? AND last_fired_date <> ?", config.ID, today).
		Update("last_fired_date", today)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return nil
	}

	return e.fire(config, now)
}

func (e *Engine) fire(config *models.AlarmConfig, now time.Time) error {
	logger := schedulerLogger()

	triggeredAt := now

	var session models.AlarmSession
	err := e.Db.Conn.
		Where("config_id = ? AND state = ?", config.ID, models.SessionStateArmed).
		First(&session).Error
	switch {
	case err == nil:
		won, terr := e.transition(session.ID,
			[]models.SessionState{models.SessionStateArmed},
			models.SessionStateRinging,
			map[string]any{"triggered_at": triggeredAt})
		if terr != nil {
			return terr
		}
		if !won {
			// Armed session vanished under us (cancel race); nothing rings.
			return nil
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		session = models.AlarmSession{
			ID:          uuid.NewString(),
			ConfigID:    config.ID,
			State:       models.SessionStateRinging,
			ArmedAt:     now,
			TriggeredAt: &triggeredAt,
		}
		if cerr := e.Db.Conn.Create(&session).Error; cerr != nil {
			return cerr
		}
	default:
		return err
	}

	logger.Info("Alarm triggered",
		zap.String("owner_id", config.OwnerID),
		zap.Uint("config_id", config.ID),
		zap.String("session_id", session.ID))

	if _, err := e.Challenge.Issue(session.ID); err != nil {
		// The ring is already committed; the gateway retries issuance on
		// the next poll.
		logger.Warn("Challenge issuance failed at trigger",
			zap.String("session_id", session.ID),
			zap.Error(err))
	}

	return nil
}

func (e *Engine) expireOverdueSessions(now time.Time) {
	logger := schedulerLogger()

	cutoff := now.Add(-e.Policy.MaxRingDuration)

	var overdue []models.AlarmSession
	err := e.Db.Conn.
		Where("state IN ? AND triggered_at IS NOT NULL AND triggered_at <= ?", models.RingingStates, cutoff).
		Find(&overdue).Error
	if err != nil {
		logger.Error("Failed to scan for overdue sessions", zap.Error(err))
		return
	}

	for _, session := range overdue {
		won, err := e.transition(session.ID, models.RingingStates, models.SessionStateExpired, map[string]any{
			"challenge_token":  "",
			"token_expires_at": nil,
		})
		if err != nil {
			logger.Error("Failed to expire session",
				zap.String("session_id", session.ID),
				zap.Error(err))
			continue
		}
		if won {
			logger.Info("Session expired without dismissal proof",
				zap.String("session_id", session.ID))
		}
	}
}

type ISchedulerImpl struct {
	engine *Engine
}

func (is *ISchedulerImpl) SetAlarm(ownerID string, hour, minute int, timezone string) (*models.AlarmConfig, error) {
	return is.engine.setAlarm(ownerID, hour, minute, timezone)
}

func (is *ISchedulerImpl) GetOwnerConfig(ownerID string) (*models.AlarmConfig, error) {
	return is.engine.getOwnerConfig(ownerID)
}

func (is *ISchedulerImpl) Arm(configID uint) (*models.AlarmSession, error) {
	return is.engine.arm(configID)
}

func (is *ISchedulerImpl) Cancel(sessionID string) (bool, error) {
	return is.engine.cancel(sessionID)
}

func (is *ISchedulerImpl) CancelOwner(ownerID string) (bool, error) {
	return is.engine.cancelOwner(ownerID)
}

func (is *ISchedulerImpl) Status(configID uint) (*models.AlarmStatus, error) {
	return is.engine.status(configID)
}

func (is *ISchedulerImpl) Evaluate(now time.Time) {
	is.engine.evaluate(now)
}

func (e *Engine) GetIScheduler() IScheduler {
	return &ISchedulerImpl{engine: e}
}
