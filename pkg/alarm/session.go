package alarm

import (
	"go.uber.org/zap"
	"wakeqr.xyz/smart-alarm-service/pkg/common"
	"wakeqr.xyz/smart-alarm-service/pkg/models"
)

func (e *Engine) getSession(sessionID string) (*models.AlarmSession, error) {
	var session models.AlarmSession
	err := e.Db.Conn.First(&session, "id = ?", sessionID).Error
	return &session, err
}

// transition is the single compare-and-set primitive every state change goes
// through. The guarded UPDATE succeeds for exactly one caller when several
// race on the same precondition; losers see won == false and must not apply
// side effects.
func (e *Engine) transition(sessionID string, from []models.SessionState, to models.SessionState, fields map[string]any) (bool, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameAlarmCore,
		zap.String(common.LoggerFieldAlarmCategory, common.LoggerCategorySession),
	)

	updates := map[string]any{"state": to}
	for k, v := range fields {
		updates[k] = v
	}

	res := e.Db.Conn.Model(&models.AlarmSession{}).
		Where("id = ? AND state IN ?", sessionID, from).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}

	won := res.RowsAffected == 1
	if won {
		logger.Info("Session transitioned",
			zap.String("session_id", sessionID),
			zap.String("to", string(to)))
	}
	return won, nil
}

type ISessionImpl struct {
	engine *Engine
}

func (is *ISessionImpl) GetSession(sessionID string) (*models.AlarmSession, error) {
	return is.engine.getSession(sessionID)
}

func (is *ISessionImpl) Transition(sessionID string, from []models.SessionState, to models.SessionState, fields map[string]any) (bool, error) {
	return is.engine.transition(sessionID, from, to, fields)
}

func (e *Engine) GetISession() ISession {
	return &ISessionImpl{engine: e}
}
