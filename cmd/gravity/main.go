// Command gravity runs the engine headless: it loads a scenario, advances
// the simulation a fixed number of ticks, and reports aggregate state. With
// -watch it keeps running and rebuilds the world whenever the scenario file
// changes on disk.
package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/jakecoffman/cp"

	"github.com/RustWorks/gravity-sim-v2/body"
	"github.com/RustWorks/gravity-sim-v2/scenario"
	"github.com/RustWorks/gravity-sim-v2/sim"
)

const tickInterval = time.Second / 60

func main() {
	scenarioPath := flag.String("scenario", "", "scenario file (.yaml or .tengo); empty seeds the default grid")
	ticks := flag.Int("ticks", 600, "ticks to run")
	report := flag.Int("report", 60, "ticks between reports (0 disables)")
	watch := flag.Bool("watch", false, "keep running and reload when the scenario file changes")
	flag.Parse()

	clock, err := build(*scenarioPath)
	if err != nil {
		log.Fatalf("gravity: %v", err)
	}
	log.Printf("gravity: %d bodies loaded", clock.Len())

	if *watch {
		runWatched(clock, *scenarioPath, *report)
		return
	}

	for i := 1; i <= *ticks; i++ {
		clock.Tick()
		if *report > 0 && i%*report == 0 {
			logState(clock, i)
		}
	}
	logState(clock, *ticks)
}

func build(path string) (*sim.Clock, error) {
	if path == "" {
		return defaultGrid(), nil
	}
	spec, err := scenario.Load(path)
	if err != nil {
		return nil, err
	}
	return scenario.Build(spec), nil
}

// defaultGrid seeds the 10x10 lattice of light bodies the interactive build
// starts with.
func defaultGrid() *sim.Clock {
	clock := sim.NewClock(sim.DefaultTuning())
	for i := 0; i < 100; i++ {
		clock.Insert(body.Body{
			Pos:    cp.Vector{X: float64(i/10) * 100, Y: float64(i%10) * 100},
			Mass:   0.2,
			Radius: 2.5,
		})
	}
	return clock
}

func runWatched(clock *sim.Clock, path string, report int) {
	dir := "."
	if path != "" {
		dir = filepath.Dir(path)
	}
	watcher, err := scenario.NewWatcher(dir)
	if err != nil {
		log.Fatalf("gravity: watch %s: %v", dir, err)
	}
	defer watcher.Close()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	tick := 0
	for {
		select {
		case <-ticker.C:
			clock.Tick()
			tick++
			if report > 0 && tick%report == 0 {
				logState(clock, tick)
			}
		case name, ok := <-watcher.Events:
			if !ok {
				return
			}
			if path != "" && filepath.Clean(name) != filepath.Clean(path) {
				continue
			}
			fresh, err := build(path)
			if err != nil {
				log.Printf("gravity: reload %s: %v", name, err)
				continue
			}
			fresh.SetPaused(clock.Paused())
			*clock = *fresh
			tick = 0
			log.Printf("gravity: reloaded %s, %d bodies", name, clock.Len())
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("gravity: watcher error: %v", err)
		case <-sigCh:
			logState(clock, tick)
			return
		}
	}
}

func logState(clock *sim.Clock, tick int) {
	var mass float64
	var momentum cp.Vector
	n := 0
	clock.Each(func(_ body.Handle, s sim.Snapshot) {
		if s.Preview {
			return
		}
		n++
		mass += s.Mass
		momentum = momentum.Add(s.Vel.Mult(s.Mass))
	})
	log.Printf("gravity: tick=%d bodies=%d mass=%.4f momentum=(%.4f, %.4f)",
		tick, n, mass, momentum.X, momentum.Y)
}
