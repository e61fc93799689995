package alarm

import (
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"wakeqr.xyz/smart-alarm-service/pkg/common"
	"wakeqr.xyz/smart-alarm-service/pkg/models"
)

const challengeTokenPrefix = "alarm_"

// NewChallengeToken mints the text encoded into the visual code shown to the
// camera: "alarm_" plus twelve hex characters of fresh uuid material.
func NewChallengeToken() string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return challengeTokenPrefix + hex[:12]
}

// issue binds a fresh token to the session and moves it into
// awaiting_dismissal. Issuing again while the session is still live
// overwrites the stored token, which is the rotation: an older code can no
// longer verify.
func (e *Engine) issue(sessionID string) (string, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameAlarmCore,
		zap.String(common.LoggerFieldAlarmCategory, common.LoggerCategoryChallenge),
	)

	token := NewChallengeToken()
	expiry := e.now().Add(e.Policy.TokenTTL)

	won, err := e.transition(sessionID, models.RingingStates, models.SessionStateAwaitingDismissal, map[string]any{
		"challenge_token":  token,
		"token_expires_at": expiry,
	})
	if err != nil {
		return "", err
	}
	if !won {
		return "", errors.New("session is not in a ringing state")
	}

	logger.Info("Challenge issued",
		zap.String("session_id", sessionID),
		zap.Time("expires_at", expiry))

	return token, nil
}

// verify reports whether the decoded payload matches the live token of the
// session. A mismatch is an expected outcome, never an error: most scans
// are of the wrong thing.
func (e *Engine) verify(sessionID string, payload string) (bool, error) {
	session, err := e.getSession(sessionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if session.State != models.SessionStateAwaitingDismissal {
		return false, nil
	}
	if session.ChallengeToken == "" || session.TokenExpired(e.now()) {
		return false, nil
	}

	return subtle.ConstantTimeCompare(
		[]byte(strings.TrimSpace(payload)),
		[]byte(session.ChallengeToken),
	) == 1, nil
}

type IChallengeImpl struct {
	engine *Engine
}

func (ic *IChallengeImpl) Issue(sessionID string) (string, error) {
	return ic.engine.issue(sessionID)
}

func (ic *IChallengeImpl) Verify(sessionID string, payload string) (bool, error) {
	return ic.engine.verify(sessionID, payload)
}

func (e *Engine) GetIChallenge() IChallenge {
	return &IChallengeImpl{engine: e}
}
