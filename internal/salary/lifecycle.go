package salary

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"
)

// Lifecycle states of a Salary. A Salary accumulates one month and is then
// either written out as a summary or thrown away.
const (
	StateEmpty        = "empty"
	StateAccumulating = "accumulating"
	StateFinalized    = "finalized"
	StateDiscarded    = "discarded"
)

const (
	eventWork     = "work"
	eventFinalize = "finalize"
	eventDiscard  = "discard"
)

type lifecycleContext struct{}

type lifecycle struct {
	interpreter *statekit.Interpreter[lifecycleContext]
}

// startLifecycle creates an interpreter of the salary machine, which is
// built once. lifecycleErr is set instead when the machine does not build.
var startLifecycle, lifecycleErr = buildLifecycle()

func buildLifecycle() (func() *lifecycle, error) {
	builder := statekit.NewMachine[lifecycleContext]("salary").
		WithInitial(statekit.StateID(StateEmpty)).
		WithContext(lifecycleContext{})

	builder.State(StateEmpty).
		On(eventWork).Target(StateAccumulating).
		On(eventFinalize).Target(StateFinalized).
		On(eventDiscard).Target(StateDiscarded).
		Done()

	builder.State(StateAccumulating).
		On(eventFinalize).Target(StateFinalized).
		On(eventDiscard).Target(StateDiscarded).
		Done()

	// Sealed states only loop on themselves; Salary rejects work before sending.
	builder.State(StateFinalized).
		On(eventFinalize).Target(StateFinalized).
		Done()
	builder.State(StateDiscarded).
		On(eventDiscard).Target(StateDiscarded).
		Done()

	machine, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("building salary state machine: %w", err)
	}

	return func() *lifecycle {
		interpreter := statekit.NewInterpreter(machine)
		interpreter.Start()
		return &lifecycle{interpreter: interpreter}
	}, nil
}

func (l *lifecycle) current() string {
	return string(l.interpreter.State().Value)
}

func (l *lifecycle) sealed() bool {
	s := l.current()
	return s == StateFinalized || s == StateDiscarded
}

// send fires event and reports an error if the machine did not move.
func (l *lifecycle) send(event string) error {
	before := l.current()
	l.interpreter.Send(statekit.Event{Type: statekit.EventType(event)})
	if l.current() == before {
		return fmt.Errorf("salary: %q is not allowed in state %q", event, before)
	}
	return nil
}
