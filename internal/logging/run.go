package logging

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"
)

// GenerateRunID creates a unique identifier for one process run.
// Format: YYYYMMDD_HHMMSS_xxxx
func GenerateRunID() string {
	random := make([]byte, 2)
	_, _ = rand.Read(random)
	return time.Now().Format("20060102_150405") + "_" + hex.EncodeToString(random)
}

// RunFilename is the log file name of a run.
// Example: "20251217_205106_a7b3" -> "run_20251217_205106_a7b3.log"
func RunFilename(runID string) string {
	return "run_" + runID + ".log"
}

// ParseRunFilename is the inverse of RunFilename.
func ParseRunFilename(filename string) (string, bool) {
	id, ok := strings.CutPrefix(filename, "run_")
	if !ok {
		return "", false
	}
	id, ok = strings.CutSuffix(id, ".log")
	if !ok || id == "" {
		return "", false
	}
	return id, true
}
