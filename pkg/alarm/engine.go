package alarm

import (
	"errors"
	"time"

	"wakeqr.xyz/smart-alarm-service/pkg/db"
	"wakeqr.xyz/smart-alarm-service/pkg/models"
)

// ErrInvariant marks programming-logic faults (negative latency, illegal
// transitions). Callers distinguish these from normal control flow with
// errors.Is.
var ErrInvariant = errors.New("alarm engine invariant violated")

// Decoder turns an opaque scan payload (camera frame) into the text encoded
// in the visual code. QR decoding itself lives outside the engine; a failed
// decode is an ordinary no-match, not an error surfaced to the device.
type Decoder interface {
	Decode(payload []byte) (string, error)
}

type ISession interface {
	GetSession(sessionID string) (*models.AlarmSession, error)
	Transition(sessionID string, from []models.SessionState, to models.SessionState, fields map[string]any) (bool, error)
}

type IScheduler interface {
	SetAlarm(ownerID string, hour, minute int, timezone string) (*models.AlarmConfig, error)
	GetOwnerConfig(ownerID string) (*models.AlarmConfig, error)
	Arm(configID uint) (*models.AlarmSession, error)
	Cancel(sessionID string) (bool, error)
	CancelOwner(ownerID string) (bool, error)
	Status(configID uint) (*models.AlarmStatus, error)
	Evaluate(now time.Time)
}

type IChallenge interface {
	Issue(sessionID string) (string, error)
	Verify(sessionID string, payload string) (bool, error)
}

type IGateway interface {
	Bind(deviceID, ownerID string) error
	Poll(deviceID string) (models.PollState, error)
	SubmitScan(deviceID string, payload []byte) (*models.ScanResult, error)
}

type IStats interface {
	Record(session *models.AlarmSession) error
	Summary(ownerID string, limit int) (*models.WakeupSummary, error)
}

// Policy holds the timing knobs of the engine.
type Policy struct {
	// Tolerance is the window after the configured trigger time within
	// which a tick still fires. Must exceed the tick interval.
	Tolerance time.Duration
	// MaxRingDuration is the safety cutoff after which an unresolved
	// session expires instead of ringing forever.
	MaxRingDuration time.Duration
	// TokenTTL bounds the life of a challenge token. Kept shorter than
	// MaxRingDuration.
	TokenTTL time.Duration
	// RotatePerPoll mints a fresh token on every device poll instead of
	// keeping one token for the whole ring window.
	RotatePerPoll bool
}

func DefaultPolicy() Policy {
	return Policy{
		Tolerance:       60 * time.Second,
		MaxRingDuration: 10 * time.Minute,
		TokenTTL:        5 * time.Minute,
		RotatePerPoll:   false,
	}
}

type Engine struct {
	Db     db.DB
	Policy Policy

	// Now is overridable for tests; nil means time.Now.
	Now func() time.Time

	Session   ISession
	Scheduler IScheduler
	Challenge IChallenge
	Gateway   IGateway
	Stats     IStats
	Decoder   Decoder
}

type ServiceOpts struct {
	Session   ISession
	Scheduler IScheduler
	Challenge IChallenge
	Gateway   IGateway
	Stats     IStats
	Decoder   Decoder
}

func (e *Engine) WithServices(opts ServiceOpts) *Engine {
	if opts.Session != nil {
		e.Session = opts.Session
	}
	if opts.Scheduler != nil {
		e.Scheduler = opts.Scheduler
	}
	if opts.Challenge != nil {
		e.Challenge = opts.Challenge
	}
	if opts.Gateway != nil {
		e.Gateway = opts.Gateway
	}
	if opts.Stats != nil {
		e.Stats = opts.Stats
	}
	if opts.Decoder != nil {
		e.Decoder = opts.Decoder
	}
	return e
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e *Engine) decoder() Decoder {
	if e.Decoder != nil {
		return e.Decoder
	}
	return TextDecoder{}
}
