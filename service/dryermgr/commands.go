// SPDX-License-Identifier: BSD-3-Clause

package dryermgr

import (
	"github.com/filamentdry/dryercore/pkg/config"
	"github.com/filamentdry/dryercore/pkg/pid"
	"github.com/filamentdry/dryercore/pkg/preset"
)

// Start requests the RUNNING state from READY or POWER_RECOVERED. It
// is a no-op in any other state.
func (o *Orchestrator) Start() { o.fire(triggerStart) }

// Pause requests PAUSED from RUNNING. It is a no-op otherwise.
func (o *Orchestrator) Pause() { o.fire(triggerPause) }

// Resume requests RUNNING from PAUSED. It is a no-op otherwise.
func (o *Orchestrator) Resume() { o.fire(triggerResume) }

// Stop requests READY from RUNNING or PAUSED, discarding progress
// without persisting an emergency or finished marker. It is a no-op
// otherwise.
func (o *Orchestrator) Stop() { o.fire(triggerStop) }

// Reset requests READY from any state (including RUNNING and PAUSED,
// abandoning an in-progress cycle), clearing the persisted runtime
// snapshot.
func (o *Orchestrator) Reset() { o.fire(triggerReset) }

// SelectPreset changes the active preset. Ignored while RUNNING or
// PAUSED: a cycle in progress keeps its preset until stopped or reset.
func (o *Orchestrator) SelectPreset(name preset.Name) {
	switch o.fsm.CurrentState() {
	case stateRunning, statePaused:
		return
	}
	o.applyActivePreset(name)
	o.settings.SelectedPreset = o.activePreset
	o.st.SetSettings(o.settings)
}

// SetCustomPreset updates the CUSTOM preset's candidate values in
// memory, clamped into range. Call SaveCustomPreset to persist it.
func (o *Orchestrator) SetCustomPreset(p preset.Preset) {
	clamped := p.Clamp()
	o.settings.CustomPreset = clamped
	if o.activePreset == preset.CUSTOM {
		o.targetTemp = clamped.Temp
		o.duration = clamped.Time
		o.applyCeiling(clamped.HeaterCeiling())
	}
}

// SaveCustomPreset flushes the current CUSTOM preset candidate to the
// persistence store.
func (o *Orchestrator) SaveCustomPreset() {
	o.st.SetSettings(o.settings)
}

// SetPIDProfile switches the controller's gain triple and persists the
// choice.
func (o *Orchestrator) SetPIDProfile(name pid.ProfileName) {
	o.settings.PIDProfile = name
	o.pidCtrl.SetProfile(name)
	o.st.SetSettings(o.settings)
}

// SetSoundEnabled toggles whether sound cues play and persists the
// choice.
func (o *Orchestrator) SetSoundEnabled(enabled bool) {
	o.settings.SoundEnabled = enabled
	o.st.SetSettings(o.settings)
}

// AdjustRemaining shifts the cycle's remaining time by delta seconds,
// clamping the resulting duration to [MinTime, MaxTime]. It acts on
// duration rather than start_time so that elapsed, and therefore the
// monotone-elapsed-while-RUNNING invariant, is never perturbed.
// Applying delta then -delta restores the prior remaining time exactly
// whenever neither call saturates the clamp.
func (o *Orchestrator) AdjustRemaining(deltaSeconds int) error {
	if o.fsm.CurrentState() != stateRunning {
		return ErrAdjustWhileNotRunning
	}
	newDuration := int64(o.duration) + int64(deltaSeconds)
	if newDuration < config.MinTime {
		newDuration = config.MinTime
	}
	if newDuration > config.MaxTime {
		newDuration = config.MaxTime
	}
	o.duration = uint32(newDuration)
	return nil
}
