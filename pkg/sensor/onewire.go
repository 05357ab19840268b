// SPDX-License-Identifier: BSD-3-Clause

package sensor

import (
	"time"

	"periph.io/x/conn/v3/onewire"

	"github.com/filamentdry/dryercore/pkg/config"
)

// conversionDelayForResolution mirrors a DS18B20's datasheet timing: 9
// bits converts in 94ms, 10 in 188ms, 11 in 375ms, 12 (full resolution)
// in 750ms.
func conversionDelayForResolution(bits int) time.Duration {
	switch bits {
	case 9:
		return 94 * time.Millisecond
	case 10:
		return 188 * time.Millisecond
	case 11:
		return 375 * time.Millisecond
	default:
		return 750 * time.Millisecond
	}
}

// DS18B20OneWire is a HeaterSensor backed by a real DS18B20 on a 1-wire
// bus. It models the sensor as the explicit two-state (idle,
// converting) machine the design notes call for: RequestConversion
// issues the "convert T" command and places the bus in strong pull-up,
// IsConversionReady compares elapsed time against the resolution's
// conversion delay, and Retrieve reads the scratchpad.
type DS18B20OneWire struct {
	dev        onewire.Dev
	resolution int

	tracker         failureTracker
	temp            Reading
	converting      bool
	conversionStart time.Time
}

// NewDS18B20OneWire creates a heater sensor driving a DS18B20 at the
// given 1-wire address with 12-bit (full) resolution.
func NewDS18B20OneWire(bus onewire.Bus, addr onewire.Address) *DS18B20OneWire {
	return &DS18B20OneWire{
		dev:        onewire.Dev{Bus: bus, Addr: addr},
		resolution: 12,
		tracker:    newFailureTracker(config.MaxConsecutiveFailures),
	}
}

func (d *DS18B20OneWire) Begin(now time.Time) error {
	d.temp = Reading{Timestamp: now}
	d.converting = false
	return nil
}

func (d *DS18B20OneWire) RequestConversion(now time.Time) error {
	if err := d.dev.Tx([]byte{0x44}, nil, onewire.StrongPullup); err != nil {
		d.tracker.recordFailure(err)
		return err
	}
	d.converting = true
	d.conversionStart = now
	return nil
}

func (d *DS18B20OneWire) IsConversionReady(now time.Time) bool {
	if !d.converting {
		return false
	}
	return now.Sub(d.conversionStart) >= conversionDelayForResolution(d.resolution)
}

func (d *DS18B20OneWire) Retrieve(now time.Time) error {
	if !d.converting {
		return ErrNotConverting
	}
	d.converting = false

	scratchpad := make([]byte, 9)
	if err := d.dev.Tx([]byte{0xbe}, scratchpad, onewire.WeakPullup); err != nil {
		d.tracker.recordFailure(err)
		d.temp.Valid = d.tracker.isValid()
		return err
	}

	raw := int16(scratchpad[0]) | int16(scratchpad[1])<<8
	celsius := float64(raw) / 16.0

	if celsius < config.HeaterTempMin || celsius > config.HeaterTempMax {
		d.tracker.recordFailure(ErrOutOfRange)
		d.temp.Valid = d.tracker.isValid()
		return ErrOutOfRange
	}

	d.tracker.recordSuccess()
	d.temp = Reading{Value: celsius, Timestamp: now, Valid: true}
	return nil
}

func (d *DS18B20OneWire) Temperature() Reading { return d.temp }
func (d *DS18B20OneWire) IsValid() bool        { return d.tracker.isValid() }
func (d *DS18B20OneWire) LastError() error     { return d.tracker.lastError() }
