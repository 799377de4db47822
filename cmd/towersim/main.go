// cmd/towersim/main.go
// Copyright(c) 2026 towersim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// towersim runs the tower-control simulation core headless: a single
// goroutine drives ticks and drains the event stream, standing in for the
// radar UI. Aircraft state and session events go to the structured log;
// the final score is printed on exit.

package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"towersim/pkg/log"
	"towersim/pkg/sim"
)

func main() {
	configPath := flag.String("config", "", "path to YAML configuration file")
	logLevel := flag.String("loglevel", "info", "logging level: debug, info, warn, error")
	logDir := flag.String("logdir", "", "directory for log files")
	seed := flag.Int64("seed", 0, "RNG seed for a reproducible session (0 seeds from the default stream)")
	duration := flag.Duration("duration", 0, "end the session after this long (0 runs until interrupted)")
	flag.Parse()

	lg := log.New(*logLevel, *logDir)

	cfg, err := sim.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", *configPath, err)
		os.Exit(1)
	}

	es := sim.NewEventStream(lg)
	defer es.Destroy()
	sub := es.Subscribe()

	s := sim.NewSim(cfg, es, *seed, lg)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(time.Duration(cfg.TickPeriod))
	defer ticker.Stop()

	var deadline <-chan time.Time
	if *duration > 0 {
		deadline = time.After(*duration)
	}

	for {
		select {
		case <-sigs:
			s.EndSession()
		case <-deadline:
			s.EndSession()
		case <-ticker.C:
			s.Update()
		}

		for _, ev := range sub.Get() {
			lg.Info("event", "event", ev)
			if ev.Type == sim.SessionEndedEvent {
				fmt.Printf("final score: %d\n", ev.Score)
				return
			}
		}
	}
}
