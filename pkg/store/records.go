// SPDX-License-Identifier: BSD-3-Clause

package store

import (
	"encoding/json"

	"github.com/filamentdry/dryercore/pkg/pid"
	"github.com/filamentdry/dryercore/pkg/preset"
)

const (
	settingsFile  = "settings.json"
	runtimeFile   = "runtime.json"
	emergencyFile = "emergency.txt"

	currentVersion = 1

	settingsFilePerm = 0o644
)

// customPresetJSON mirrors the on-disk {"temp":f,"time":u32,"overshoot":f}
// shape, independent of preset.Preset's Go field names.
type customPresetJSON struct {
	Temp      float64 `json:"temp"`
	Time      uint32  `json:"time"`
	Overshoot float64 `json:"overshoot"`
}

// settingsJSON is the on-disk settings record.
type settingsJSON struct {
	Version        int               `json:"version"`
	CustomPreset   customPresetJSON  `json:"customPreset"`
	SelectedPreset string            `json:"selectedPreset"`
	PIDProfile     string            `json:"pidProfile"`
	SoundEnabled   bool              `json:"soundEnabled"`
}

// Settings is the in-memory, typed view of the settings record.
type Settings struct {
	CustomPreset   preset.Preset
	SelectedPreset preset.Name
	PIDProfile     pid.ProfileName
	SoundEnabled   bool
}

// DefaultSettings returns the settings a fresh store boots with.
func DefaultSettings() Settings {
	return Settings{
		CustomPreset:   preset.Preset{Temp: 50, Time: 14400, Overshoot: 10},
		SelectedPreset: preset.PLA,
		PIDProfile:     pid.NORMAL,
		SoundEnabled:   true,
	}
}

func (s Settings) marshal() ([]byte, error) {
	doc := settingsJSON{
		Version: currentVersion,
		CustomPreset: customPresetJSON{
			Temp:      s.CustomPreset.Temp,
			Time:      s.CustomPreset.Time,
			Overshoot: s.CustomPreset.Overshoot,
		},
		SelectedPreset: string(s.SelectedPreset),
		PIDProfile:     string(s.PIDProfile),
		SoundEnabled:   s.SoundEnabled,
	}
	return json.Marshal(doc)
}

// unmarshalSettings parses a settings record. An unmarshal error or a
// version of 0/mismatch is reported via ok=false, per "unknown or zero
// version ⇒ treat as absent".
func unmarshalSettings(data []byte) (Settings, bool) {
	var doc settingsJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return Settings{}, false
	}
	if doc.Version != currentVersion {
		return Settings{}, false
	}
	return Settings{
		CustomPreset: preset.Preset{
			Temp:      doc.CustomPreset.Temp,
			Time:      doc.CustomPreset.Time,
			Overshoot: doc.CustomPreset.Overshoot,
		},
		SelectedPreset: preset.ParseName(doc.SelectedPreset),
		PIDProfile:     pid.ParseProfileName(doc.PIDProfile),
		SoundEnabled:   doc.SoundEnabled,
	}, true
}

// runtimeJSON is the on-disk runtime snapshot record.
type runtimeJSON struct {
	Version    int     `json:"version"`
	State      string  `json:"state"`
	Elapsed    uint32  `json:"elapsed"`
	TargetTemp float64 `json:"targetTemp"`
	TargetTime uint32  `json:"targetTime"`
	Preset     string  `json:"preset"`
	Timestamp  uint32  `json:"timestamp"`
}

// RuntimeSnapshot is the in-memory, typed view of the runtime record.
type RuntimeSnapshot struct {
	State      string
	Elapsed    uint32
	TargetTemp float64
	TargetTime uint32
	Preset     preset.Name
	Timestamp  uint32
}

func (r RuntimeSnapshot) marshal() ([]byte, error) {
	doc := runtimeJSON{
		Version:    currentVersion,
		State:      r.State,
		Elapsed:    r.Elapsed,
		TargetTemp: r.TargetTemp,
		TargetTime: r.TargetTime,
		Preset:     string(r.Preset),
		Timestamp:  r.Timestamp,
	}
	return json.Marshal(doc)
}

// unmarshalRuntime parses a runtime snapshot record, per the same
// absent-on-version-mismatch rule as settings. Unknown state values
// fall back to READY.
func unmarshalRuntime(data []byte) (RuntimeSnapshot, bool) {
	var doc runtimeJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return RuntimeSnapshot{}, false
	}
	if doc.Version != currentVersion {
		return RuntimeSnapshot{}, false
	}
	state := doc.State
	switch state {
	case "RUNNING", "PAUSED", "READY", "FINISHED", "FAILED":
	default:
		state = "READY"
	}
	return RuntimeSnapshot{
		State:      state,
		Elapsed:    doc.Elapsed,
		TargetTemp: doc.TargetTemp,
		TargetTime: doc.TargetTime,
		Preset:     preset.ParseName(doc.Preset),
		Timestamp:  doc.Timestamp,
	}, true
}
