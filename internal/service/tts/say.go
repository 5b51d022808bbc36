package tts

import (
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Значения по умолчанию для системной утилиты синтеза (macOS `say`).
const (
	DefaultCommand = "say"
	DefaultVoice   = "Daniel"
)

// SayAnnouncer произносит текст внешним процессом (по умолчанию `say -v Daniel <text>`).
// Процесс не ожидается: он работает параллельно с таймером, завершение собирается в фоне.
type SayAnnouncer struct {
	command string
	voice   string
	logger  *zap.SugaredLogger
}

// NewSayAnnouncer создаёт озвучку через внешнюю команду. Пустая команда заменяется на `say`;
// пустой голос — голос системы по умолчанию (флаг -v не передаётся).
func NewSayAnnouncer(command, voice string, logger *zap.SugaredLogger) *SayAnnouncer {
	if strings.TrimSpace(command) == "" {
		command = DefaultCommand
	}
	return &SayAnnouncer{command: command, voice: strings.TrimSpace(voice), logger: logger}
}

func (s *SayAnnouncer) args(text string) []string {
	if s.voice == "" {
		return []string{text}
	}
	return []string{"-v", s.voice, text}
}

// Announce запускает процесс и возвращается, не дожидаясь окончания речи.
func (s *SayAnnouncer) Announce(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	cmd := exec.Command(s.command, s.args(text)...)
	if err := cmd.Start(); err != nil {
		if s.logger != nil {
			s.logger.Warnw("Failed to start speech process", "command", s.command, "text", text, "error", err)
		}
		return
	}
	started := time.Now()
	go func() {
		if err := cmd.Wait(); err != nil && s.logger != nil {
			s.logger.Warnw("Speech process failed", "command", s.command, "text", text, "error", err)
			return
		}
		if s.logger != nil {
			s.logger.Debugw("Speech done", "text", text, "took", time.Since(started).String())
		}
	}()
}
