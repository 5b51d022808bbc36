package tts_test

import (
	"testing"
	"time"

	"Tabata/internal/service/tts"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObserved() (*zap.SugaredLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core).Sugar(), logs
}

func waitForLog(t *testing.T, logs *observer.ObservedLogs, msg string) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if logs.FilterMessage(msg).Len() > 0 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("log %q was not written", msg)
}

func TestSayAnnouncer_SatisfiesAnnouncer(t *testing.T) {
	var _ tts.Announcer = tts.NewSayAnnouncer("", "", nil)
	var _ tts.Announcer = tts.AnnouncerFunc(func(string) {})
}

func TestSayAnnouncer_DoesNotBlock(t *testing.T) {
	logger, _ := newObserved()
	// `sleep 2` стоит на месте синтезатора: Announce не должен ждать завершения процесса.
	a := tts.NewSayAnnouncer("sleep", "", logger)

	start := time.Now()
	a.Announce("2")
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Fatalf("Announce blocked for %s", elapsed)
	}
}

func TestSayAnnouncer_MissingCommandIsLogged(t *testing.T) {
	logger, logs := newObserved()
	a := tts.NewSayAnnouncer("definitely-not-a-speech-engine", tts.DefaultVoice, logger)

	a.Announce("Begin ACTIVITY")

	entries := logs.FilterMessage("Failed to start speech process").All()
	if len(entries) != 1 {
		t.Fatalf("expected one warning, got %d", len(entries))
	}
	if entries[0].Level != zapcore.WarnLevel {
		t.Errorf("expected WARN level, got %s", entries[0].Level)
	}
	if got := entries[0].ContextMap()["text"]; got != "Begin ACTIVITY" {
		t.Errorf("expected text field, got %v", got)
	}
}

func TestSayAnnouncer_ProcessFailureIsLogged(t *testing.T) {
	logger, logs := newObserved()
	a := tts.NewSayAnnouncer("false", "", logger)

	a.Announce("REST ends in")

	waitForLog(t, logs, "Speech process failed")
}

func TestSayAnnouncer_EmptyTextIgnored(t *testing.T) {
	logger, logs := newObserved()
	a := tts.NewSayAnnouncer("definitely-not-a-speech-engine", "", logger)

	a.Announce("   ")

	if logs.Len() != 0 {
		t.Fatalf("expected no logs for empty text, got %d", logs.Len())
	}
}
