package main

import (
	"flag"
	"log"
	"time"

	"github.com/swdee/go-tmd26721"
	"go.uber.org/zap"
)

func main() {

	backend := flag.String("backend", "periph", "I2C backend to use: periph, goi2c or smbus")
	i2cbus := flag.String("b", "", "I2C bus to use, a periph bus name or a /dev/i2c-N path")
	smbusNum := flag.Int("smbus", 1, "SMBus number for the smbus backend")
	configPath := flag.String("config", "", "Path to YAML sensor configuration")
	reads := flag.Int("n", 10, "Number of proximity readings to take")
	interval := flag.Duration("interval", 200*time.Millisecond, "Delay between readings")
	flag.Parse()

	logger, err := zap.NewDevelopment()

	if err != nil {
		log.Fatal(err)
	}

	defer logger.Sync()

	addr := tmd26721.Address
	cfg := tmd26721.DefaultConfig()

	if *configPath != "" {
		addr, cfg, err = loadConfig(*configPath)

		if err != nil {
			logger.Fatal("Loading config failed", zap.Error(err))
		}
	}

	bus, closeBus, err := openBus(*backend, *i2cbus, *smbusNum, addr)

	if err != nil {
		logger.Fatal("Opening I2C bus failed", zap.String("backend", *backend),
			zap.Error(err))
	}

	defer closeBus()

	// the driver logs through the standard library logger
	sensor := tmd26721.NewWithLog(zap.NewStdLog(logger.Named("tmd26721")))

	// settings are written once, by Begin
	if err := sensor.Configure(cfg); err != nil {
		logger.Fatal("Invalid sensor config", zap.Error(err))
	}

	if err := sensor.Begin(bus, addr); err != nil {
		// later reads retry the initialization
		logger.Warn("Sensor init failed", zap.Error(err))
	}

	logger.Info("Sensor configured",
		zap.Uint8("address", sensor.Address()),
		zap.Uint8("pulses", cfg.PulseCount),
		zap.Stringer("drive", cfg.DriveStrength),
		zap.Stringer("channel", cfg.Channel),
		zap.Stringer("gain", cfg.Gain))

	for i := 0; i < *reads; i++ {

		prox, err := sensor.Read()

		if err != nil {
			logger.Error("Read error", zap.Error(err),
				zap.Bool("timeout", sensor.TimeoutOccurred()))
		} else {
			logger.Info("Proximity", zap.Uint16("count", prox))
		}

		time.Sleep(*interval)
	}
}
