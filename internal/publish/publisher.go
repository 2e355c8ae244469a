package publish

import (
	"context"
	"fmt"

	"github.com/specialistvlad/gridplan/internal/ctxlog"
	"github.com/specialistvlad/gridplan/internal/planner"
	"github.com/specialistvlad/gridplan/internal/quantity"
)

// DefaultEvent is the event name placements are emitted under.
const DefaultEvent = "placement"

// Emitter is the part of a socket.io client a Publisher uses.
// *socket.Socket satisfies it.
type Emitter interface {
	Emit(event string, args ...any) error
}

// Message is the payload of one placement event.
type Message struct {
	RunID       string  `json:"run_id"`
	ID          string  `json:"id"`
	Unit        string  `json:"unit"`
	Start       float64 `json:"start"`
	End         float64 `json:"end"`
	Flexibility float64 `json:"flexibility"`
	Endangered  bool    `json:"endangered"`
	Step        int     `json:"step"`
}

// NewMessage builds the payload for a placed outcome of run runID.
func NewMessage[U quantity.Unit](runID string, o planner.Outcome[U]) Message {
	var u U
	return Message{
		RunID:       runID,
		ID:          o.ID,
		Unit:        u.Symbol(),
		Start:       o.Interval.Start().Value(),
		End:         o.Interval.End().Value(),
		Flexibility: o.Flexibility,
		Endangered:  o.Endangered,
		Step:        o.Step,
	}
}

// Publisher emits every committed placement.
type Publisher[U quantity.Unit] struct {
	emitter Emitter
	event   string
	runID   string
}

var _ planner.Listener[quantity.Second] = (*Publisher[quantity.Second])(nil)

// New returns a Publisher emitting on event, or DefaultEvent if empty.
// Every message is tagged with runID.
func New[U quantity.Unit](e Emitter, event, runID string) *Publisher[U] {
	if event == "" {
		event = DefaultEvent
	}
	return &Publisher[U]{emitter: e, event: event, runID: runID}
}

// OnPlaced implements planner.Listener.
func (p *Publisher[U]) OnPlaced(ctx context.Context, o planner.Outcome[U]) error {
	msg := NewMessage(p.runID, o)
	if err := p.emitter.Emit(p.event, msg); err != nil {
		return fmt.Errorf("failed to publish placement of task '%s': %w", o.ID, err)
	}
	ctxlog.FromContext(ctx).Debug("Placement published.", "event", p.event, "task", o.ID, "step", o.Step)
	return nil
}
