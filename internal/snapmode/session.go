package snapmode

import (
	"github.com/1broseidon/snaptile/internal/platform"
	"github.com/1broseidon/snaptile/internal/tiling"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Phase represents the current phase of a snap session
type Phase int

const (
	// PhaseIdle means no window is being dragged
	PhaseIdle Phase = iota
	// PhaseArmed means a drag started and the arm delay is running
	PhaseArmed
	// PhaseTracking means snap targets are evaluated on every move
	PhaseTracking
)

// String returns the string representation of the phase
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseArmed:
		return "armed"
	case PhaseTracking:
		return "tracking"
	default:
		return "unknown"
	}
}

// Session is the state of one move drag, from drag-begin to drag-end.
type Session struct {
	ID     uuid.UUID
	Window platform.WindowID
	Phase  Phase
	// Target is the last target previewed; invalid when none is shown.
	Target tiling.Target

	timer   Stopper
	moveTok platform.Token
	log     zerolog.Logger
}

func newSession(win platform.WindowID, logger zerolog.Logger) *Session {
	id := uuid.New()
	return &Session{
		ID:     id,
		Window: win,
		Phase:  PhaseArmed,
		log: logger.With().
			Str("session", id.String()).
			Str("window", formatWindow(win)).
			Logger(),
	}
}

// stopTimer cancels the arm timer if it is still pending.
func (s *Session) stopTimer() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
