// SPDX-License-Identifier: BSD-3-Clause

package dryermgr

import (
	"log/slog"
	"math"
	"time"

	"github.com/filamentdry/dryercore/pkg/config"
	"github.com/filamentdry/dryercore/pkg/heater"
	"github.com/filamentdry/dryercore/pkg/pid"
	"github.com/filamentdry/dryercore/pkg/preset"
	"github.com/filamentdry/dryercore/pkg/safety"
	"github.com/filamentdry/dryercore/pkg/sensor"
	"github.com/filamentdry/dryercore/pkg/sensoragg"
	"github.com/filamentdry/dryercore/pkg/state"
	"github.com/filamentdry/dryercore/pkg/store"
)

// Cycle state names, also used verbatim in the persisted runtime
// record's "state" field (except POWER_RECOVERED, which is never
// persisted: recovery re-derives it from a persisted RUNNING/PAUSED
// snapshot on Begin).
const (
	stateReady          = "READY"
	stateRunning        = "RUNNING"
	statePaused         = "PAUSED"
	stateFinished       = "FINISHED"
	stateFailed         = "FAILED"
	statePowerRecovered = "POWER_RECOVERED"
)

const (
	triggerStart  = "start"
	triggerPause  = "pause"
	triggerResume = "resume"
	triggerStop   = "stop"
	triggerReset  = "reset"
	triggerFinish = "finish"
	triggerFail   = "fail"
)

// Orchestrator holds the cycle state machine and coordinates the
// sensor aggregator, PID controller, safety monitor, heater driver,
// and persistence store that make up one dryer. It is not
// goroutine-safe: a single cooperative loop owns it exclusively and
// drives it with Tick.
type Orchestrator struct {
	cfg    cfg
	logger *slog.Logger
	sound  Sound

	agg       *sensoragg.Aggregator
	pidCtrl   *pid.Controller
	safetyMon *safety.Monitor
	st        *store.Store
	heaterDrv heater.Driver

	fsm *state.Machine

	now time.Time

	settings     store.Settings
	activePreset preset.Name
	targetTemp   float64
	duration     uint32

	startTime   time.Time
	pausedAt    time.Time
	totalPaused time.Duration

	recoveredElapsed    uint32
	lastEmergencyReason string
	lastSnapshotTime    time.Time

	statsSubs [config.MaxSubscribers]StatsHandler
	statsN    int
}

// New creates an Orchestrator over its collaborators. Begin must be
// called once before Tick or any command.
func New(agg *sensoragg.Aggregator, pidCtrl *pid.Controller, safetyMon *safety.Monitor, st *store.Store, heaterDrv heater.Driver, opts ...Option) *Orchestrator {
	c := defaultConfig()
	for _, opt := range opts {
		opt.apply(&c)
	}
	o := &Orchestrator{
		cfg:       c,
		logger:    c.logger,
		agg:       agg,
		pidCtrl:   pidCtrl,
		safetyMon: safetyMon,
		st:        st,
		heaterDrv: heaterDrv,
	}
	o.sound = gatedSound{inner: c.sound, enabled: func() bool { return o.settings.SoundEnabled }}
	return o
}

// Begin initializes every collaborator, loads persisted settings,
// recovers an in-progress cycle if the store holds a valid RUNNING or
// PAUSED snapshot, and arms the state machine.
func (o *Orchestrator) Begin(now time.Time) error {
	o.now = now

	if err := o.st.Begin(); err != nil {
		return err
	}
	if err := o.agg.Begin(now); err != nil {
		return err
	}
	if err := o.heaterDrv.Begin(now); err != nil {
		return err
	}
	o.safetyMon.Begin()

	o.settings = o.st.Settings()
	o.pidCtrl.SetProfile(o.settings.PIDProfile)
	o.safetyMon.SetMaxBoxTemp(config.MaxBoxTemp)

	initial := stateReady
	if o.st.HasValidRuntimeState() {
		snap := o.st.RuntimeState()
		if snap.State == stateRunning || snap.State == statePaused {
			o.activePreset = snap.Preset
			o.targetTemp = snap.TargetTemp
			o.duration = snap.TargetTime
			o.recoveredElapsed = snap.Elapsed
			o.startTime = now.Add(-time.Duration(snap.Elapsed) * time.Second)
			initial = statePowerRecovered
		}
	}
	if initial == stateReady {
		o.applyActivePreset(o.settings.SelectedPreset)
	} else {
		o.applyCeiling(o.presetCeiling())
	}

	fsm, err := state.New(o.buildStateConfig(initial))
	if err != nil {
		return err
	}
	o.fsm = fsm
	o.lastSnapshotTime = now

	o.agg.SubscribeHeaterTemp(o.onHeaterTemp)
	o.agg.SubscribeBoxData(o.onBoxData)
	o.agg.SubscribeError(o.onSensorError)
	o.safetyMon.Subscribe(o.onEmergency)

	return o.heaterDrv.SetPWM(0)
}

func (o *Orchestrator) buildStateConfig(initial string) *state.Config {
	return state.NewConfig(
		state.WithName("dryer"),
		state.WithInitialState(initial),
		state.WithStates(stateReady, stateRunning, statePaused, stateFinished, stateFailed, statePowerRecovered),

		state.WithActionTransition(stateReady, stateRunning, triggerStart, o.startFromReady),
		state.WithActionTransition(statePowerRecovered, stateRunning, triggerStart, o.startFromRecovered),
		state.WithActionTransition(stateRunning, statePaused, triggerPause, o.doPause),
		state.WithActionTransition(statePaused, stateRunning, triggerResume, o.doResume),
		state.WithActionTransition(stateRunning, stateFinished, triggerFinish, o.doFinish),
		state.WithActionTransition(stateRunning, stateReady, triggerStop, o.doStop),
		state.WithActionTransition(statePaused, stateReady, triggerStop, o.doStop),
		state.WithActionTransition(stateRunning, stateReady, triggerReset, o.doReset),
		state.WithActionTransition(statePaused, stateReady, triggerReset, o.doReset),
		state.WithActionTransition(stateFinished, stateReady, triggerReset, o.doReset),
		state.WithActionTransition(stateFailed, stateReady, triggerReset, o.doReset),
		state.WithActionTransition(statePowerRecovered, stateReady, triggerReset, o.doReset),
		state.WithActionTransition(stateReady, stateFailed, triggerFail, o.doFail),
		state.WithActionTransition(stateRunning, stateFailed, triggerFail, o.doFail),
		state.WithActionTransition(statePaused, stateFailed, triggerFail, o.doFail),
		state.WithActionTransition(stateFinished, stateFailed, triggerFail, o.doFail),
		state.WithActionTransition(statePowerRecovered, stateFailed, triggerFail, o.doFail),

		// Snapshot on entry to RUNNING or PAUSED. FINISHED and READY
		// clear the snapshot in their actions, and FAILED writes its own
		// emergency record.
		state.WithPersistence(func(_, current string) {
			if current == stateRunning || current == statePaused {
				o.st.SaveRuntimeState(current, o.elapsedSeconds(), o.targetTemp, o.duration, string(o.activePreset), uint32(o.now.Unix()))
			}
		}),
	)
}

// Tick advances the aggregator and safety monitor, checks for cycle
// completion, periodically snapshots, and emits a stats notification.
// It is the single entry point driven by the cooperative loop.
func (o *Orchestrator) Tick(now time.Time) {
	o.now = now

	o.agg.Tick(now)
	o.safetyMon.Tick(now)

	if o.fsm.CurrentState() == stateRunning {
		if o.elapsedSeconds() >= o.duration {
			o.fire(triggerFinish)
		} else if now.Sub(o.lastSnapshotTime) >= config.StateSaveInterval {
			o.snapshot()
			o.lastSnapshotTime = now
		}
	}

	o.dispatchStats()
}

// CurrentState returns the cycle's current state name.
func (o *Orchestrator) CurrentState() string { return o.fsm.CurrentState() }

// ActivePreset returns the currently selected preset name.
func (o *Orchestrator) ActivePreset() preset.Name { return o.activePreset }

// Settings returns the cached settings.
func (o *Orchestrator) Settings() store.Settings { return o.settings }

func (o *Orchestrator) elapsedSeconds() uint32 {
	if o.startTime.IsZero() {
		return 0
	}
	elapsed := o.now.Sub(o.startTime) - o.totalPaused
	if elapsed < 0 {
		elapsed = 0
	}
	if s := uint32(elapsed.Seconds()); s < o.duration {
		return s
	}
	return o.duration
}

func (o *Orchestrator) snapshot() {
	o.st.SaveRuntimeState(o.fsm.CurrentState(), o.elapsedSeconds(), o.targetTemp, o.duration, string(o.activePreset), uint32(o.now.Unix()))
}

func (o *Orchestrator) clearDurations() {
	o.startTime = time.Time{}
	o.pausedAt = time.Time{}
	o.totalPaused = 0
}

// presetCeiling returns the heater ceiling implied by the currently
// active (setpoint, overshoot) pair, recomputing the overshoot from
// the resolved preset rather than caching it separately.
func (o *Orchestrator) presetCeiling() float64 {
	p, ok := o.resolvedPreset(o.activePreset)
	if !ok {
		return o.targetTemp + config.DefaultMaxOvershoot
	}
	return p.HeaterCeiling()
}

func (o *Orchestrator) resolvedPreset(name preset.Name) (preset.Preset, bool) {
	if p, ok := preset.Builtin(name); ok {
		return p, true
	}
	if name == preset.CUSTOM {
		return o.settings.CustomPreset, true
	}
	return preset.Preset{}, false
}

func (o *Orchestrator) applyCeiling(ceiling float64) {
	o.safetyMon.SetMaxHeaterTemp(ceiling)
	o.pidCtrl.SetMaxAllowedTemp(ceiling)
}

func (o *Orchestrator) applyActivePreset(name preset.Name) {
	p, ok := o.resolvedPreset(name)
	if !ok {
		p, _ = preset.Builtin(preset.PLA)
		name = preset.PLA
	}
	o.activePreset = name
	o.targetTemp = p.Temp
	o.duration = p.Time
	o.applyCeiling(p.HeaterCeiling())
}

// --- state machine actions ---

func (o *Orchestrator) startFromReady(from, to, trigger string) {
	o.startTime = o.now
	o.totalPaused = 0
	_ = o.heaterDrv.Start(o.now)
	o.sound.PlayStart()
}

func (o *Orchestrator) startFromRecovered(from, to, trigger string) {
	o.startTime = o.now.Add(-time.Duration(o.recoveredElapsed) * time.Second)
	o.totalPaused = 0
	_ = o.heaterDrv.Start(o.now)
	o.sound.PlayStart()
}

func (o *Orchestrator) doPause(from, to, trigger string) {
	_ = o.heaterDrv.Stop(o.now)
	o.pausedAt = o.now
}

func (o *Orchestrator) doResume(from, to, trigger string) {
	_ = o.heaterDrv.Start(o.now)
	o.totalPaused += o.now.Sub(o.pausedAt)
}

func (o *Orchestrator) doFinish(from, to, trigger string) {
	_ = o.heaterDrv.Stop(o.now)
	o.pidCtrl.Reset()
	o.st.ClearRuntimeState()
	o.sound.PlayFinished()
}

func (o *Orchestrator) doStop(from, to, trigger string) {
	_ = o.heaterDrv.Stop(o.now)
	o.clearDurations()
}

func (o *Orchestrator) doReset(from, to, trigger string) {
	_ = o.heaterDrv.Stop(o.now)
	o.clearDurations()
	o.st.ClearRuntimeState()
}

func (o *Orchestrator) doFail(from, to, trigger string) {
	o.heaterDrv.EmergencyStop()
	o.pidCtrl.Reset()
	o.st.SaveEmergencyState(o.lastEmergencyReason, uint32(o.now.Unix()))
	o.sound.PlayAlarm()
}

// --- collaborator callbacks ---

func (o *Orchestrator) onHeaterTemp(r sensor.Reading) {
	o.safetyMon.NotifyHeater(r.Value, o.now)

	if o.fsm.CurrentState() != stateRunning {
		_ = o.heaterDrv.SetPWM(0)
		return
	}
	out := o.pidCtrl.Step(o.targetTemp, o.agg.BoxTemp().Value, r.Value, o.now)
	_ = o.heaterDrv.SetPWM(clampDuty(out))
}

func (o *Orchestrator) onBoxData(temp, humidity sensor.Reading) {
	o.safetyMon.NotifyBox(temp.Value, o.now)
}

func (o *Orchestrator) onSensorError(source string, err error) {
	o.logger.Warn("dryermgr: sensor read failed", "source", source, "error", err)
}

func (o *Orchestrator) onEmergency(reason string) {
	o.lastEmergencyReason = reason
	o.fire(triggerFail)
}

// fire triggers the state machine, swallowing a transition that is
// not valid in the current state: user commands and internal triggers
// invalid for the current state are no-ops, per the command-invalid
// error kind.
func (o *Orchestrator) fire(trigger string) {
	if err := o.fsm.Fire(trigger); err != nil {
		o.logger.Debug("dryermgr: trigger ignored", "trigger", trigger, "error", err)
	}
}

func clampDuty(out float64) uint8 {
	if out < 0 {
		return 0
	}
	if out > config.PWMMax {
		return config.PWMMax
	}
	return uint8(math.Round(out))
}
