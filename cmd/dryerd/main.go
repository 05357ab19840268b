// SPDX-License-Identifier: BSD-3-Clause

// Command dryerd runs the filament dryer core's cooperative control
// loop. It wires either simulated or real hardware, depending on
// -hardware, into a single goroutine that calls Orchestrator.Tick on a
// fixed cadence.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/onewire"
	"periph.io/x/conn/v3/onewire/onewirereg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"

	"github.com/filamentdry/dryercore/pkg/heater"
	"github.com/filamentdry/dryercore/pkg/log"
	"github.com/filamentdry/dryercore/pkg/pid"
	"github.com/filamentdry/dryercore/pkg/safety"
	"github.com/filamentdry/dryercore/pkg/sensor"
	"github.com/filamentdry/dryercore/pkg/sensoragg"
	"github.com/filamentdry/dryercore/pkg/store"
	"github.com/filamentdry/dryercore/service/dryermgr"
)

func main() {
	// The reference mainboard is a single-core microcontroller-class
	// part; keep the Go runtime's footprint in line with it.
	debug.SetMemoryLimit(32 * 1024 * 1024)

	hardware := flag.String("hardware", "sim", "hardware backend: sim or real")
	storeDir := flag.String("store", "/var/lib/dryerd", "persistence directory")
	tickInterval := flag.Duration("tick", 200*time.Millisecond, "cooperative loop period")
	onewireAddr := flag.Uint64("onewire-addr", 0, "DS18B20 1-wire ROM address (0 to use the bus's only device)")
	gpioPin := flag.String("gpio-pin", "GPIO18", "GPIO pin driving the heating element")
	flag.Parse()

	logger := log.NewDefaultLogger()
	log.SetGlobalLogger(logger)
	// periph.io's host drivers log through the standard library logger;
	// fold that into the structured logger too.
	log.RedirectStdLog(logger)

	heaterSensor, boxSensor, heaterDrv, err := buildHardware(*hardware, *onewireAddr, *gpioPin)
	if err != nil {
		logger.Error("dryerd: hardware init failed", "error", err)
		os.Exit(1)
	}

	agg := sensoragg.New(heaterSensor, boxSensor)
	pidCtrl := pid.New()
	safetyMon := safety.New()
	persistence := store.New(store.NewDiskFilesystem(*storeDir))
	orch := dryermgr.New(agg, pidCtrl, safetyMon, persistence, heaterDrv, dryermgr.WithLogger(logger))

	orch.SubscribeStats(func(s dryermgr.Stats) {
		logger.Debug("dryerd: stats",
			"state", s.State,
			"heaterTemp", s.HeaterTemp,
			"chamberTemp", s.ChamberTemp,
			"chamberHumidity", s.ChamberHumidity,
			"elapsed", s.ElapsedSeconds,
			"remaining", s.RemainingSeconds,
			"pwm", s.LastPWM,
		)
	})

	now := time.Now()
	if err := orch.Begin(now); err != nil {
		logger.Error("dryerd: begin failed", "error", err)
		os.Exit(1)
	}
	logger.Info("dryerd: started", "state", orch.CurrentState(), "hardware", *hardware)

	ticker := time.NewTicker(*tickInterval)
	defer ticker.Stop()
	for t := range ticker.C {
		orch.Tick(t)
	}
}

func buildHardware(backend string, onewireAddr uint64, gpioPin string) (sensor.HeaterSensor, sensor.ChamberSensor, heater.Driver, error) {
	switch backend {
	case "real":
		if _, err := host.Init(); err != nil {
			return nil, nil, nil, err
		}

		owBus, err := onewirereg.Open("")
		if err != nil {
			return nil, nil, nil, err
		}
		heaterSensor := sensor.NewDS18B20OneWire(owBus, onewire.Address(onewireAddr))

		i2cBus, err := i2creg.Open("")
		if err != nil {
			return nil, nil, nil, err
		}
		boxSensor := sensor.NewAM2320I2C(i2cBus, sensor.DefaultAM2320Address)

		pin := gpioreg.ByName(gpioPin)
		if pin == nil {
			return nil, nil, nil, fmt.Errorf("dryerd: no such GPIO pin %q", gpioPin)
		}
		heaterDrv := heater.NewGPIOPWM(pin, 200*physic.Hertz)

		return heaterSensor, boxSensor, heaterDrv, nil
	default:
		return sensor.NewSimulatedHeater(), sensor.NewSimulatedChamber(), heater.NewSimulated(), nil
	}
}
