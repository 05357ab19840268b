// SPDX-License-Identifier: BSD-3-Clause

package dryermgr

// Sound is the out-of-scope sound player's contract: the three cues
// the orchestrator triggers on state entry.
type Sound interface {
	PlayStart()
	PlayFinished()
	PlayAlarm()
}

// NoopSound is a Sound that does nothing, used when no sound player is
// configured or when settings disable it.
type NoopSound struct{}

func (NoopSound) PlayStart()    {}
func (NoopSound) PlayFinished() {}
func (NoopSound) PlayAlarm()    {}

// gatedSound wraps a Sound and suppresses every cue when enabled
// returns false, implementing the sound_enabled setting without
// threading a conditional through every call site.
type gatedSound struct {
	inner   Sound
	enabled func() bool
}

func (g gatedSound) PlayStart() {
	if g.enabled() {
		g.inner.PlayStart()
	}
}

func (g gatedSound) PlayFinished() {
	if g.enabled() {
		g.inner.PlayFinished()
	}
}

func (g gatedSound) PlayAlarm() {
	if g.enabled() {
		g.inner.PlayAlarm()
	}
}
