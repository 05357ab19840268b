// SPDX-License-Identifier: BSD-3-Clause

package sensor

import (
	"time"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"

	"github.com/filamentdry/dryercore/pkg/config"
)

// AM2320I2C is a ChamberSensor backed by a real AM2320 temperature and
// humidity sensor on an I²C bus. AM2320 sleeps between reads to avoid
// self-heating, so every Read wakes it with a throwaway transaction
// before the real one.
type AM2320I2C struct {
	dev i2c.Dev

	tracker  failureTracker
	temp     Reading
	humidity Reading
}

// DefaultAM2320Address is the AM2320's fixed I²C address.
const DefaultAM2320Address uint16 = 0x5c

// NewAM2320I2C creates a chamber sensor driving an AM2320 at the given
// I²C address.
func NewAM2320I2C(bus i2c.Bus, addr uint16) *AM2320I2C {
	return &AM2320I2C{
		dev:     i2c.Dev{Bus: bus, Addr: addr},
		tracker: newFailureTracker(config.MaxConsecutiveFailures),
	}
}

func (a *AM2320I2C) Begin(now time.Time) error {
	a.temp = Reading{Timestamp: now}
	a.humidity = Reading{Timestamp: now}
	return nil
}

func (a *AM2320I2C) Read(now time.Time) error {
	a.wake()

	write := []byte{0x03, 0x00, 0x04}
	response := make([]byte, 8)
	if err := a.dev.Tx(write, response); err != nil {
		a.recordFailure(err)
		return err
	}

	humidityRaw := int(response[2])<<8 | int(response[3])
	tempRaw := int(response[4])<<8 | int(response[5])
	negative := tempRaw&0x8000 != 0
	tempRaw &^= 0x8000

	celsius := float64(tempRaw) / 10.0
	if negative {
		celsius = -celsius
	}
	humidity := float64(humidityRaw) / 10.0

	if celsius < config.BoxTempMin || celsius > config.BoxTempMax ||
		humidity < config.HumidityMin || humidity > config.HumidityMax {
		a.recordFailure(ErrOutOfRange)
		return ErrOutOfRange
	}

	a.tracker.recordSuccess()
	a.temp = Reading{Value: celsius, Timestamp: now, Valid: true}
	a.humidity = Reading{Value: humidity, Timestamp: now, Valid: true}
	return nil
}

func (a *AM2320I2C) recordFailure(err error) {
	a.tracker.recordFailure(err)
	a.temp.Valid = a.tracker.isValid()
	a.humidity.Valid = a.tracker.isValid()
}

// wake sends the datasheet-mandated wake-up write; the sensor NACKs it
// while asleep, so the error is ignored.
func (a *AM2320I2C) wake() {
	_ = a.dev.Tx([]byte{0}, nil)
	time.Sleep(time.Millisecond)
}

func (a *AM2320I2C) Temperature() Reading { return a.temp }
func (a *AM2320I2C) Humidity() Reading    { return a.humidity }
func (a *AM2320I2C) IsValid() bool        { return a.tracker.isValid() }
func (a *AM2320I2C) LastError() error     { return a.tracker.lastError() }

// Env reports the sensor reading using periph's typed physical units,
// for callers that bridge into the wider periph.io device ecosystem
// (e.g. a physic.SenseEnv consumer) instead of the plain-float core.
func (a *AM2320I2C) Env() (physic.Temperature, physic.RelativeHumidity) {
	t := physic.ZeroCelsius + physic.Temperature(a.temp.Value*float64(physic.Celsius))
	h := physic.RelativeHumidity(a.humidity.Value * float64(physic.PercentRH))
	return t, h
}
