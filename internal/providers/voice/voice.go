// Package voice provides fire-and-forget text-to-speech playback.
package voice

import (
	"os/exec"
	"sync/atomic"

	"go.uber.org/zap"
)

// Service speaks text through an external speech command. Playback runs on a
// background goroutine that may outlive the request; its failure never
// affects an already-returned result.
type Service struct {
	enabled  bool
	command  string
	speaking atomic.Bool
	log      *zap.SugaredLogger
}

// NewService creates the provider. When the speech command is missing the
// service stays silently disabled.
func NewService(enabled bool, command string, log *zap.SugaredLogger) *Service {
	if enabled && command != "" {
		if _, err := exec.LookPath(command); err != nil {
			log.Warnw("speech command not found, voice disabled", "command", command)
			enabled = false
		}
	}
	return &Service{enabled: enabled, command: command, log: log}
}

// Enabled reports whether speech output is available.
func (s *Service) Enabled() bool {
	return s.enabled
}

// IsSpeaking reports whether a playback goroutine is currently running.
func (s *Service) IsSpeaking() bool {
	return s.speaking.Load()
}

// Speak plays the text asynchronously. Overlapping requests are dropped
// rather than queued.
func (s *Service) Speak(text string) {
	if !s.enabled || text == "" {
		return
	}
	if !s.speaking.CompareAndSwap(false, true) {
		s.log.Debugw("already speaking, dropping utterance")
		return
	}

	go func() {
		defer s.speaking.Store(false)
		if err := exec.Command(s.command, text).Run(); err != nil {
			s.log.Warnw("speech playback failed", "error", err)
		}
	}()
}
