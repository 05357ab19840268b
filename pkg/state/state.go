// SPDX-License-Identifier: BSD-3-Clause

// Package state provides a small, synchronous finite-state-machine wrapper
// around qmuntal/stateless. It is built for a single cooperative loop: Fire
// never spawns a goroutine and never blocks on a context timeout, because
// nothing in the dryer core is allowed to block on anything but a bounded
// sensor or flash I/O call.
package state

import (
	"context"
	"fmt"
	"sync"

	"github.com/qmuntal/stateless"
)

// Machine is a synchronous finite state machine.
type Machine struct {
	config  *Config
	machine *stateless.StateMachine
	mu      sync.Mutex

	current string
}

// New creates a state machine from the given configuration.
func New(config *Config) (*Machine, error) {
	if config == nil {
		return nil, ErrInvalidConfig
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	m := &Machine{
		config:  config,
		current: config.InitialState,
	}

	m.machine = stateless.NewStateMachine(config.InitialState)

	for _, s := range config.States {
		cfg := m.machine.Configure(s)
		state := s
		if entry, ok := config.EntryActions[state]; ok {
			cfg.OnEntry(func(_ context.Context, args ...any) error {
				entry(argString(args, 0), argString(args, 1))
				return nil
			})
		}
		if exit, ok := config.ExitActions[state]; ok {
			cfg.OnExit(func(_ context.Context, args ...any) error {
				exit(argString(args, 0), argString(args, 1))
				return nil
			})
		}
	}

	for _, t := range config.Transitions {
		from := m.machine.Configure(t.From)
		if t.Guard != nil {
			guard := t.Guard
			dest := t.To
			from.PermitDynamic(t.Trigger, func(context.Context, ...any) (any, error) {
				if guard() {
					return dest, nil
				}
				return nil, fmt.Errorf("%w: guard rejected trigger %q", ErrTransitionGuardFailed, t.Trigger)
			})
		} else {
			from.Permit(t.Trigger, t.To)
		}

		if t.Action != nil {
			action := t.Action
			from := t.From
			to := m.machine.Configure(t.To)
			trigger := t.Trigger
			to.OnEntryFrom(trigger, func(_ context.Context, args ...any) error {
				// Several transitions may share a destination and trigger;
				// Fire passes the source state first, so run only the
				// action registered for the state being left.
				if argString(args, 0) != from {
					return nil
				}
				action(from, t.To, trigger)
				return nil
			})
		}
	}

	return m, nil
}

func argString(args []any, i int) string {
	if i >= len(args) {
		return ""
	}
	s, _ := args[i].(string)
	return s
}

// Fire triggers a state transition. It returns ErrInvalidTransition if the
// trigger is not permitted from the current state (e.g. a user command that
// does not apply, which the orchestrator treats as a silent no-op).
func (m *Machine) Fire(trigger string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ctx := context.Background()
	if ok, _ := m.machine.CanFire(trigger); !ok {
		return fmt.Errorf("%w: trigger %q not valid in state %q", ErrInvalidTransition, trigger, m.current)
	}

	previous := m.current
	if err := m.machine.FireCtx(ctx, trigger, previous, trigger); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTransition, err)
	}

	raw, err := m.machine.State(ctx)
	if err != nil {
		return fmt.Errorf("failed to read current state: %w", err)
	}
	m.current = fmt.Sprintf("%v", raw)

	if m.config.PersistenceCallback != nil {
		m.config.PersistenceCallback(m.config.Name, m.current)
	}
	if m.config.BroadcastCallback != nil {
		m.config.BroadcastCallback(m.config.Name, previous, m.current, trigger)
	}

	return nil
}

// CurrentState returns the current state name.
func (m *Machine) CurrentState() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// CanFire reports whether the trigger is valid from the current state.
func (m *Machine) CanFire(trigger string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	ok, _ := m.machine.CanFire(trigger)
	return ok
}

// Name returns the name of the state machine.
func (m *Machine) Name() string {
	return m.config.Name
}
