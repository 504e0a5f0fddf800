package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/steviee/factorio-dash/internal/factorio"
)

// ExecutingText is shown while a command is in flight.
const ExecutingText = "Executing..."

// CommandRunner executes RCON commands.
type CommandRunner interface {
	RunCommand(ctx context.Context, command string) (string, error)
}

// CommandSubmitter sends console commands and shows the reply in its
// region. A reply never overwrites the region of a later submission.
type CommandSubmitter struct {
	runner   CommandRunner
	region   Region
	renderer Renderer
	logger   *slog.Logger
	seq      sequencer
}

// NewCommandSubmitter creates a CommandSubmitter.
func NewCommandSubmitter(runner CommandRunner, region Region, renderer Renderer, logger *slog.Logger) *CommandSubmitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CommandSubmitter{
		runner:   runner,
		region:   region,
		renderer: renderer,
		logger:   logger.With("component", "rcon"),
	}
}

// Submit runs the trimmed command. Blank input does nothing and returns
// false; otherwise it blocks until the reply is rendered and returns true.
// A reply that arrives after ctx is cancelled is not rendered.
func (s *CommandSubmitter) Submit(ctx context.Context, raw string) bool {
	command := strings.TrimSpace(raw)
	if command == "" {
		return false
	}

	seq := s.seq.issue()
	s.show(seq, ExecutingText)

	result, err := s.runner.RunCommand(ctx, command)
	if ctx.Err() != nil {
		s.logger.Debug("rcon command cancelled", "command", command, "seq", seq)
		return true
	}
	if err != nil {
		s.logger.Error("rcon command failed", "command", command, "error", err)
		s.show(seq, CommandErrorText(err))
		return true
	}

	s.logger.Info("rcon command executed", "command", command)
	s.show(seq, result)
	return true
}

func (s *CommandSubmitter) show(seq uint64, text string) {
	if !s.seq.apply(seq, func() { s.region.Replace(s.renderer.Text(text)) }) {
		s.logger.Debug("discarding stale command output", "seq", seq)
	}
}

// CommandErrorText formats a command failure for display. Application
// errors show the server detail, transport errors the underlying cause.
func CommandErrorText(err error) string {
	var appErr *factorio.ApplicationError
	if errors.As(err, &appErr) {
		return "Error: " + appErr.Message()
	}

	var transportErr *factorio.TransportError
	if errors.As(err, &transportErr) && transportErr.Err != nil {
		return "Error: " + transportErr.Err.Error()
	}

	return "Error: " + err.Error()
}
