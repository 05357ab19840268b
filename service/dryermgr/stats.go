// SPDX-License-Identifier: BSD-3-Clause

package dryermgr

// Stats is the read-only snapshot pushed to UI subscribers on every
// tick.
type Stats struct {
	State            string
	HeaterTemp       float64
	TargetTemp       float64
	ChamberTemp      float64
	ChamberHumidity  float64
	ElapsedSeconds   uint32
	RemainingSeconds uint32
	LastPWM          uint8
	ActivePreset     string
}

// StatsHandler receives the stats stream.
type StatsHandler func(Stats)

// SubscribeStats registers a handler for the per-tick stats stream. It
// panics past config.MaxSubscribers registrations.
func (o *Orchestrator) SubscribeStats(h StatsHandler) {
	if o.statsN >= len(o.statsSubs) {
		panic(ErrTooManySubscribers)
	}
	o.statsSubs[o.statsN] = h
	o.statsN++
}

func (o *Orchestrator) dispatchStats() {
	s := o.stats()
	for i := 0; i < o.statsN; i++ {
		o.statsSubs[i](s)
	}
}

func (o *Orchestrator) stats() Stats {
	elapsed := o.elapsedSeconds()
	remaining := uint32(0)
	if o.duration > elapsed {
		remaining = o.duration - elapsed
	}
	return Stats{
		State:            o.fsm.CurrentState(),
		HeaterTemp:       o.agg.HeaterTemp().Value,
		TargetTemp:       o.targetTemp,
		ChamberTemp:      o.agg.BoxTemp().Value,
		ChamberHumidity:  o.agg.BoxHumidity().Value,
		ElapsedSeconds:   elapsed,
		RemainingSeconds: remaining,
		LastPWM:          o.heaterDrv.CurrentPWM(),
		ActivePreset:     string(o.activePreset),
	}
}
