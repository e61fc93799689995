package models

import "time"

type SessionState string

const (
	SessionStateArmed             SessionState = "armed"
	SessionStateRinging           SessionState = "ringing"
	SessionStateAwaitingDismissal SessionState = "awaiting_dismissal"
	SessionStateDismissed         SessionState = "dismissed"
	SessionStateExpired           SessionState = "expired"
	SessionStateCancelled         SessionState = "cancelled"
)

func (s SessionState) Terminal() bool {
	switch s {
	case SessionStateDismissed, SessionStateExpired, SessionStateCancelled:
		return true
	}
	return false
}

// LiveStates are the states in which a session still owns its alarm.
var LiveStates = []SessionState{
	SessionStateArmed,
	SessionStateRinging,
	SessionStateAwaitingDismissal,
}

// RingingStates are the states in which the device must sound.
var RingingStates = []SessionState{
	SessionStateRinging,
	SessionStateAwaitingDismissal,
}

// PollState is the device-facing answer to "should I ring".
type PollState string

const (
	PollStateIdle PollState = "idle"
	PollStateRing PollState = "ring"
)

// ScanAction tells the device what to do after submitting a scan.
type ScanAction string

const (
	ScanActionContinue ScanAction = "continue"
	ScanActionStop     ScanAction = "stop"
)

type ScanResult struct {
	Action      ScanAction `json:"action"`
	WakeSeconds *int64     `json:"wake_seconds,omitempty"`
}

type AlarmStatus struct {
	State       string     `json:"state"`
	SessionID   string     `json:"session_id,omitempty"`
	TriggeredAt *time.Time `json:"triggered_at,omitempty"`
	NextTrigger *time.Time `json:"next_trigger,omitempty"`
}

type WakeupSummary struct {
	Count        int     `json:"count"`
	AvgSeconds   float64 `json:"avg_seconds"`
	BestSeconds  int64   `json:"best_seconds"`
	WorstSeconds int64   `json:"worst_seconds"`
}

type AlarmConfig struct {
	ID       uint   `gorm:"primaryKey"`
	OwnerID  string `gorm:"index"`
	Hour     int
	Minute   int
	Timezone string
	Enabled  bool
	// LastFiredDate is the calendar day (2006-01-02, in Timezone) of the
	// most recent trigger. It guards against a second session for the
	// same calendar trigger.
	LastFiredDate string

	Sessions []AlarmSession `gorm:"foreignKey:ConfigID;references:ID"`
}

type AlarmSession struct {
	ID             string       `gorm:"primaryKey"`
	ConfigID       uint         `gorm:"index"`
	State          SessionState `gorm:"type:varchar(20);index;check:state IN ('armed','ringing','awaiting_dismissal','dismissed','expired','cancelled')"`
	ArmedAt        time.Time
	TriggeredAt    *time.Time
	DismissedAt    *time.Time
	ChallengeToken string
	TokenExpiresAt *time.Time
}

func (s *AlarmSession) TokenExpired(now time.Time) bool {
	return s.TokenExpiresAt == nil || now.After(*s.TokenExpiresAt)
}

type DeviceBinding struct {
	DeviceID   string `gorm:"primaryKey"`
	OwnerID    string `gorm:"index"`
	LastPollAt *time.Time
	SessionID  string
}

type WakeupRecord struct {
	ID             uint   `gorm:"primaryKey"`
	SessionID      string `gorm:"uniqueIndex"`
	OwnerID        string `gorm:"index"`
	TriggeredAt    time.Time
	DismissedAt    time.Time
	LatencySeconds int64
}
