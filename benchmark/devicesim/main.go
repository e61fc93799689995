package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"wakeqr.xyz/smart-alarm-service/pkg/models"
)

var maxDevices int = 50
var httpHostPort string = "127.0.0.1:1080"
var dbPath string = "alarms.db"
var pollInterval = 1 * time.Second
var ringTimeout = 3 * time.Minute

var rnd *rand.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))

// The simulator plays both sides of a wake-up: the bedside device polling
// over HTTP, and the sleeper scanning the displayed code. The code itself is
// read straight from the server's sqlite file, standing in for the camera
// seeing the screen.
var simDb *gorm.DB

func main() {
	resp, err := http.Get(fmt.Sprintf("http://%s/healthz", httpHostPort))
	if err != nil {
		log.Fatal("Failed to connect to HTTP server:", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Fatal("HTTP server not available")
	}

	fmt.Printf("http server verified\n")

	simDb, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to open server database (run server with ALARM_DB_TYPE=file):", err)
	}

	fmt.Printf("server database opened at %v\n", dbPath)

	deviceIDs := make([]string, maxDevices)
	ownerIDs := make([]string, maxDevices)
	for i := 0; i < maxDevices; i++ {
		deviceIDs[i] = uuid.NewString()
		ownerIDs[i] = uuid.NewString()
	}
	fmt.Printf("generated %v device IDs\n", maxDevices)

	var startTime time.Time
	var usedTime time.Duration

	startTime = time.Now()
	wg := sync.WaitGroup{}
	for i := 0; i < maxDevices; i++ {
		i := i
		wg.Add(1)
		go func() {
			bindDevice(deviceIDs[i], ownerIDs[i])
			setAlarm(ownerIDs[i], time.Now().UTC().Add(1*time.Minute))
			fmt.Printf("\rbound and armed device %v", i)
			wg.Done()
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\rbound and armed %v devices: used time=%v seconds, throughput=%v action/second\n",
		maxDevices, usedTime.Seconds(), float64(maxDevices*2)/usedTime.Seconds(),
	)

	wakeSeconds := make([]int64, maxDevices)
	dismissed := make([]bool, maxDevices)

	startTime = time.Now()
	wg = sync.WaitGroup{}
	for i := 0; i < maxDevices; i++ {
		i := i
		wg.Add(1)
		go func() {
			wakeSeconds[i], dismissed[i] = runDevice(deviceIDs[i], ownerIDs[i])
			wg.Done()
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	var count, total, worst int64
	for i := 0; i < maxDevices; i++ {
		if !dismissed[i] {
			continue
		}
		count++
		total += wakeSeconds[i]
		if wakeSeconds[i] > worst {
			worst = wakeSeconds[i]
		}
	}

	fmt.Printf(
		"\n\rdismissed %v/%v alarms in %v seconds: avg wake=%vs, worst wake=%vs\n",
		count, maxDevices, usedTime.Seconds(), float64(total)/float64(max(count, 1)), worst,
	)
}

func bindDevice(deviceID, ownerID string) {
	payload := map[string]string{"owner_id": ownerID}
	jsonData, _ := json.Marshal(payload)
	resp, err := http.Post(fmt.Sprintf("http://%s/device/%s/bind", httpHostPort, deviceID), "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		panic(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		panic(fmt.Sprintf("bind failed for device %v: %v", deviceID, resp.StatusCode))
	}
}

func setAlarm(ownerID string, at time.Time) {
	payload := map[string]any{
		"hour":     at.Hour(),
		"minute":   at.Minute(),
		"timezone": "UTC",
	}
	jsonData, _ := json.Marshal(payload)
	resp, err := http.Post(fmt.Sprintf("http://%s/owners/%s/alarm", httpHostPort, ownerID), "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		panic(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		panic(fmt.Sprintf("set alarm failed for owner %v: %v", ownerID, resp.StatusCode))
	}
}

// runDevice polls until the alarm rings, scans the displayed code, and
// returns the reported wake latency.
func runDevice(deviceID, ownerID string) (int64, bool) {
	deadline := time.Now().Add(ringTimeout)
	for time.Now().Before(deadline) {
		if pollState(deviceID) == "ring" {
			break
		}
		time.Sleep(pollInterval + time.Duration(rnd.Int31n(200))*time.Millisecond)
	}

	if pollState(deviceID) != "ring" {
		fmt.Printf("\ndevice %v never rang\n", deviceID)
		return 0, false
	}

	// A sleepy first attempt with a garbage frame keeps the alarm ringing.
	if action, _ := scan(deviceID, []byte("not-the-code")); action != "continue" {
		fmt.Printf("\nunexpected action for garbage scan on device %v: %v\n", deviceID, action)
	}

	token := liveToken(ownerID)
	if token == "" {
		fmt.Printf("\nno live challenge found for owner %v\n", ownerID)
		return 0, false
	}

	action, wake := scan(deviceID, []byte(token))
	if action != "stop" {
		fmt.Printf("\nscan of live code did not stop device %v: %v\n", deviceID, action)
		return 0, false
	}

	fmt.Printf("\rdevice %v dismissed after %vs", deviceID, wake)
	return wake, true
}

func pollState(deviceID string) string {
	resp, err := http.Get(fmt.Sprintf("http://%s/device/%s/poll", httpHostPort, deviceID))
	if err != nil {
		fmt.Printf("\nerror: %v\n", err)
		return ""
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return ""
	}

	var body struct {
		State string `json:"state"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		fmt.Printf("\nerror: %v\n", err)
		return ""
	}
	return body.State
}

func scan(deviceID string, payload []byte) (string, int64) {
	resp, err := http.Post(fmt.Sprintf("http://%s/device/%s/scan", httpHostPort, deviceID), "application/octet-stream", bytes.NewBuffer(payload))
	if err != nil {
		fmt.Printf("\nerror: %v\n", err)
		return "", 0
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	var body struct {
		Action      string `json:"action"`
		WakeSeconds int64  `json:"wake_seconds"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		fmt.Printf("\nerror: %v (%s)\n", err, raw)
		return "", 0
	}
	return body.Action, body.WakeSeconds
}

func liveToken(ownerID string) string {
	var session models.AlarmSession
	err := simDb.
		Where("state = ? AND config_id IN (?)",
			models.SessionStateAwaitingDismissal,
			simDb.Model(&models.AlarmConfig{}).Select("id").Where("owner_id = ?", ownerID)).
		First(&session).Error
	if err != nil {
		return ""
	}
	return session.ChallengeToken
}
