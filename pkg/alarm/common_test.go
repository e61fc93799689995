package alarm

import (
	"bufio"
	"encoding/json"
	"io"
	"testing"

	"go.uber.org/mock/gomock"
	"wakeqr.xyz/smart-alarm-service/pkg/alarm/mocks"
	"wakeqr.xyz/smart-alarm-service/pkg/db"
)

func GetMockEngineWithMemorySqliteDialector(t *testing.T, useMockChallenge, useMockStats bool) (
	*gomock.Controller,
	*Engine,
	*mocks.MockIChallenge,
	*mocks.MockIStats,
) {
	ctrl := gomock.NewController(t)

	mockChallenge := mocks.NewMockIChallenge(ctrl)
	mockStats := mocks.NewMockIStats(ctrl)
	dbInstance := db.GetInstance(db.UseMemorySqliteDialector()) // ensure migrations
	engine := &Engine{
		Db:     *dbInstance,
		Policy: DefaultPolicy(),
	}

	challengeService := engine.GetIChallenge()
	if useMockChallenge {
		challengeService = mockChallenge
	}

	statsService := engine.GetIStats()
	if useMockStats {
		statsService = mockStats
	}

	engine.WithServices(ServiceOpts{
		Session:   engine.GetISession(),
		Scheduler: engine.GetIScheduler(),
		Challenge: challengeService,
		Gateway:   engine.GetIGateway(),
		Stats:     statsService,
	})

	return ctrl, engine, mockChallenge, mockStats
}

func ParseLogs(r io.Reader) []any {
	scanner := bufio.NewScanner(r)
	var logs []any

	for scanner.Scan() {
		line := scanner.Text()
		var j any
		if err := json.Unmarshal([]byte(line), &j); err == nil {
			logs = append(logs, j)
		}
	}
	return logs
}
