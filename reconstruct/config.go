package main

import (
	"fmt"

	reco "github.com/viking-exp/klreco/pkg"
)

func printConfiguration(config reco.Configuration, logger Logger) {
	logger.Info(fmt.Sprintf("File in: %s", config.FileIn), "config")
	logger.Info(fmt.Sprintf("File out: %s", config.FileOut), "config")
	logger.Info(fmt.Sprintf("Output mode: %v", config.OutputMode), "config")
	logger.Info(fmt.Sprintf("Watch: %t", config.Watch), "config")
	if config.Watch {
		logger.Info(fmt.Sprintf("Watch settle time: %d ms", config.WatchSettleMs), "config")
	}
	logger.Info(fmt.Sprintf("Signature: %v", config.Signature), "config")
	logger.Info(fmt.Sprintf("Layout: %s", config.Layout), "config")
	logger.Info(fmt.Sprintf("Layout file: %s", config.LayoutFile), "config")
	logger.Info(fmt.Sprintf("Use DB: %t", config.UseDB), "config")
	if config.UseDB {
		logger.Info(fmt.Sprintf("DB driver: %s", config.DBDriver), "config")
		logger.Info(fmt.Sprintf("Host: %s", config.Host), "config")
		logger.Info(fmt.Sprintf("DB name: %s", config.DBName), "config")
	}
	logger.Info(fmt.Sprintf("Position smear: %g cm", config.PositionSmear), "config")
	logger.Info(fmt.Sprintf("Time smear: %g ns", config.TimeSmear), "config")
	logger.Info(fmt.Sprintf("Parent mass: %g GeV/c2", config.ParentMass), "config")
	logger.Info(fmt.Sprintf("Momentum ceiling: %g GeV/c", config.MomentumCeiling), "config")
	logger.Info(fmt.Sprintf("Seed: %d", config.Seed), "config")
	logger.Info(fmt.Sprintf("Max events: %d", config.MaxEvents), "config")
	logger.Info(fmt.Sprintf("Verbosity: %d", config.Verbosity), "config")
	logger.Info(fmt.Sprintf("Parallel: %t", config.Parallel), "config")
	logger.Info(fmt.Sprintf("Number of workers: %d", config.NumWorkers), "config")
	logger.Info(fmt.Sprintf("Compression level: %d", config.CompressionLevel), "config")
	logger.Info(fmt.Sprintf("Metrics file: %s", config.MetricsFile), "config")
	logger.Info(fmt.Sprintf("Plot file: %s", config.PlotFile), "config")
}
