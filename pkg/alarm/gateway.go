package alarm

import (
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"wakeqr.xyz/smart-alarm-service/pkg/common"
	"wakeqr.xyz/smart-alarm-service/pkg/models"
)

// TextDecoder is the default Decoder: it treats the scan payload as the
// decoded text itself. Real deployments inject a Decoder backed by an image
// pipeline; the engine only ever sees the resulting string.
type TextDecoder struct{}

func (TextDecoder) Decode(payload []byte) (string, error) {
	text := strings.TrimSpace(string(payload))
	if text == "" {
		return "", errors.New("no code found in payload")
	}
	return text, nil
}

func gatewayLogger() *zap.Logger {
	return common.GetLoggerWith(
		common.LoggerNameAlarmCore,
		zap.String(common.LoggerFieldAlarmCategory, common.LoggerCategoryGateway),
	)
}

func (e *Engine) bind(deviceID, ownerID string) error {
	binding := models.DeviceBinding{
		DeviceID: deviceID,
		OwnerID:  ownerID,
	}

	err := e.Db.Conn.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "device_id"}},
		UpdateAll: true,
	}).Create(&binding).Error
	if err != nil {
		return err
	}

	gatewayLogger().Info("Device bound",
		zap.String("device_id", deviceID),
		zap.String("owner_id", ownerID))
	return nil
}

// liveRingingSession resolves the session the owner's device should be
// sounding for, if any.
func (e *Engine) liveRingingSession(ownerID string) (*models.AlarmSession, error) {
	var session models.AlarmSession
	err := e.Db.Conn.
		Where("state IN ? AND config_id IN (?)",
			models.RingingStates,
			e.Db.Conn.Model(&models.AlarmConfig{}).Select("id").Where("owner_id = ?", ownerID)).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// poll answers the device's "should I ring" question. Unknown devices and
// quiet periods are idle, not faults.
func (e *Engine) poll(deviceID string) (models.PollState, error) {
	now := e.now()

	var binding models.DeviceBinding
	err := e.Db.Conn.First(&binding, "device_id = ?", deviceID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.PollStateIdle, nil
	}
	if err != nil {
		return models.PollStateIdle, err
	}

	if err := e.Db.Conn.Model(&models.DeviceBinding{}).
		Where("device_id = ?", deviceID).
		Update("last_poll_at", now).Error; err != nil {
		return models.PollStateIdle, err
	}

	session, err := e.liveRingingSession(binding.OwnerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if binding.SessionID != "" {
			if err := e.clearBindingSession(deviceID); err != nil {
				return models.PollStateIdle, err
			}
		}
		return models.PollStateIdle, nil
	}
	if err != nil {
		return models.PollStateIdle, err
	}

	needsToken := session.State == models.SessionStateRinging ||
		session.ChallengeToken == "" ||
		session.TokenExpired(now) ||
		e.Policy.RotatePerPoll
	if needsToken {
		if _, err := e.Challenge.Issue(session.ID); err != nil {
			// Keep ringing; issuance is retried on the next poll.
			gatewayLogger().Warn("Challenge issuance failed on poll",
				zap.String("session_id", session.ID),
				zap.Error(err))
		}
	}

	if binding.SessionID != session.ID {
		if err := e.Db.Conn.Model(&models.DeviceBinding{}).
			Where("device_id = ?", deviceID).
			Update("session_id", session.ID).Error; err != nil {
			return models.PollStateRing, err
		}
	}

	return models.PollStateRing, nil
}

// submitScan handles one camera frame from the device. Decode failures and
// wrong codes mean "keep ringing"; only the first correct scan of the live
// token wins the dismissal.
func (e *Engine) submitScan(deviceID string, payload []byte) (*models.ScanResult, error) {
	logger := gatewayLogger()
	keepRinging := &models.ScanResult{Action: models.ScanActionContinue}

	var binding models.DeviceBinding
	err := e.Db.Conn.First(&binding, "device_id = ?", deviceID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return keepRinging, nil
	}
	if err != nil {
		return nil, err
	}

	session, err := e.liveRingingSession(binding.OwnerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return keepRinging, nil
	}
	if err != nil {
		return nil, err
	}

	decoded, err := e.decoder().Decode(payload)
	if err != nil {
		logger.Debug("Scan payload did not decode",
			zap.String("device_id", deviceID),
			zap.Error(err))
		return keepRinging, nil
	}

	match, err := e.Challenge.Verify(session.ID, decoded)
	if err != nil {
		return nil, err
	}
	if !match {
		return keepRinging, nil
	}

	now := e.now()
	won, err := e.Session.Transition(session.ID,
		[]models.SessionState{models.SessionStateAwaitingDismissal},
		models.SessionStateDismissed,
		map[string]any{
			"dismissed_at":     now,
			"challenge_token":  "",
			"token_expires_at": nil,
		})
	if err != nil {
		return nil, err
	}
	if !won {
		// Lost the race. If the winner already dismissed, stopping is an
		// idempotent instruction; anything else keeps the device ringing.
		current, gerr := e.Session.GetSession(session.ID)
		if gerr == nil && current.State == models.SessionStateDismissed {
			return &models.ScanResult{Action: models.ScanActionStop}, nil
		}
		return keepRinging, nil
	}

	dismissed, err := e.Session.GetSession(session.ID)
	if err != nil {
		return nil, err
	}

	if err := e.Stats.Record(dismissed); err != nil {
		// Terminal state is already committed; a recording fault must not
		// undo the dismissal.
		logger.Error("Failed to record wakeup",
			zap.String("session_id", session.ID),
			zap.Error(err))
	}

	if err := e.clearBindingSession(deviceID); err != nil {
		logger.Warn("Failed to clear device binding",
			zap.String("device_id", deviceID),
			zap.Error(err))
	}

	logger.Info("Alarm dismissed by scan",
		zap.String("device_id", deviceID),
		zap.String("session_id", session.ID))

	result := &models.ScanResult{Action: models.ScanActionStop}
	if dismissed.TriggeredAt != nil && dismissed.DismissedAt != nil {
		wake := int64(dismissed.DismissedAt.Sub(*dismissed.TriggeredAt).Seconds())
		result.WakeSeconds = &wake
	}
	return result, nil
}

func (e *Engine) clearBindingSession(deviceID string) error {
	return e.Db.Conn.Model(&models.DeviceBinding{}).
		Where("device_id = ?", deviceID).
		Update("session_id", "").Error
}

type IGatewayImpl struct {
	engine *Engine
}

func (ig *IGatewayImpl) Bind(deviceID, ownerID string) error {
	return ig.engine.bind(deviceID, ownerID)
}

func (ig *IGatewayImpl) Poll(deviceID string) (models.PollState, error) {
	return ig.engine.poll(deviceID)
}

func (ig *IGatewayImpl) SubmitScan(deviceID string, payload []byte) (*models.ScanResult, error) {
	return ig.engine.submitScan(deviceID, payload)
}

func (e *Engine) GetIGateway() IGateway {
	return &IGatewayImpl{engine: e}
}
