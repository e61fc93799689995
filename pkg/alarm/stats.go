package alarm

import (
	"fmt"

	"go.uber.org/zap"
	"wakeqr.xyz/smart-alarm-service/pkg/common"
	"wakeqr.xyz/smart-alarm-service/pkg/models"
)

const DefaultStatsWindow = 30

func statsLogger() *zap.Logger {
	return common.GetLoggerWith(
		common.LoggerNameAlarmCore,
		zap.String(common.LoggerFieldAlarmCategory, common.LoggerCategoryStats),
	)
}

// record derives the immutable WakeupRecord from a dismissed session. Only a
// session carrying positive proof of wakefulness may produce one; anything
// else is an engine fault, not data.
func (e *Engine) record(session *models.AlarmSession) error {
	if session.State != models.SessionStateDismissed ||
		session.TriggeredAt == nil || session.DismissedAt == nil {
		return fmt.Errorf("%w: wakeup record requested for session %s in state %s",
			ErrInvariant, session.ID, session.State)
	}

	latency := session.DismissedAt.Sub(*session.TriggeredAt)
	if latency < 0 {
		return fmt.Errorf("%w: negative wake latency %v for session %s",
			ErrInvariant, latency, session.ID)
	}

	var config models.AlarmConfig
	if err := e.Db.Conn.First(&config, "id = ?", session.ConfigID).Error; err != nil {
		return err
	}

	record := models.WakeupRecord{
		SessionID:      session.ID,
		OwnerID:        config.OwnerID,
		TriggeredAt:    *session.TriggeredAt,
		DismissedAt:    *session.DismissedAt,
		LatencySeconds: int64(latency.Seconds()),
	}

	// Unique index on session_id backstops exactly-once recording.
	if err := e.Db.Conn.Create(&record).Error; err != nil {
		return err
	}

	statsLogger().Info("Wakeup recorded",
		zap.String("session_id", session.ID),
		zap.String("owner_id", config.OwnerID),
		zap.Int64("latency_seconds", record.LatencySeconds))

	return nil
}

// summary aggregates the owner's most recent wakeups, bounded by limit.
func (e *Engine) summary(ownerID string, limit int) (*models.WakeupSummary, error) {
	if limit <= 0 {
		limit = DefaultStatsWindow
	}

	var records []models.WakeupRecord
	err := e.Db.Conn.
		Where("owner_id = ?", ownerID).
		Order("dismissed_at desc").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	summary := &models.WakeupSummary{Count: len(records)}
	if len(records) == 0 {
		return summary, nil
	}

	latencies := common.Mapper(records, func(r models.WakeupRecord) int64 {
		return r.LatencySeconds
	})

	total := common.Reducer(latencies, func(acc int64, l int64) int64 { return acc + l }, int64(0))
	summary.AvgSeconds = float64(total) / float64(len(latencies))

	summary.BestSeconds = common.Reducer(latencies, func(best int64, l int64) int64 {
		if l < best {
			return l
		}
		return best
	}, latencies[0])

	summary.WorstSeconds = common.Reducer(latencies, func(worst int64, l int64) int64 {
		if l > worst {
			return l
		}
		return worst
	}, latencies[0])

	return summary, nil
}

type IStatsImpl struct {
	engine *Engine
}

func (is *IStatsImpl) Record(session *models.AlarmSession) error {
	return is.engine.record(session)
}

func (is *IStatsImpl) Summary(ownerID string, limit int) (*models.WakeupSummary, error) {
	return is.engine.summary(ownerID, limit)
}

func (e *Engine) GetIStats() IStats {
	return &IStatsImpl{engine: e}
}
