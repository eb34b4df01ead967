package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"der_simulator/internal/config"
	"der_simulator/internal/der"
	"der_simulator/internal/frame"
	"der_simulator/internal/ingest"
	"der_simulator/internal/store"
)

func main() {
	configPath := flag.String("config", "scenario.yaml", "scenario YAML (battery + schedules)")
	inputPath := flag.String("input", "input", "load CSV file, or directory of per-meter CSVs")
	resolution := flag.String("resolution", "", "optional resample target before simulating (e.g. 1h)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Load config: %v", err)
	}
	battery, err := cfg.BuildBattery()
	if err != nil {
		log.Fatalf("Build battery: %v", err)
	}
	strategy, err := cfg.BuildStrategy()
	if err != nil {
		log.Fatalf("Build strategy: %v", err)
	}

	var target time.Duration
	if *resolution != "" {
		target, err = time.ParseDuration(*resolution)
		if err != nil {
			log.Fatalf("Invalid resolution %q: %v", *resolution, err)
		}
	}

	meters := loadMeters(*inputPath, target)
	if meters.Len() == 0 {
		log.Fatal("No load data found")
	}

	director := der.NewDirector(der.BatterySimulationBuilder{
		DER:      battery,
		Strategy: strategy,
	})

	sims := make([]*der.Simulation, 0, meters.Len())
	for _, id := range meters.MeterIDs() {
		load, _ := meters.Meter(id)
		sim, err := director.RunSingleSimulation(load)
		if err != nil {
			log.Fatalf("Simulate %s: %v", id, err)
		}
		sims = append(sims, sim)
		fmt.Fprintf(os.Stderr, "  %s done (%d intervals)\n", id, load.Len())
	}

	fleet, err := der.Aggregate(sims)
	if err != nil {
		log.Fatalf("Aggregate: %v", err)
	}

	report(fleet, meters.Len())
}

// loadMeters reads every CSV under path (or path itself) into the store,
// optionally resampling to the target resolution.
func loadMeters(path string, target time.Duration) *store.Store {
	info, err := os.Stat(path)
	if err != nil {
		log.Fatalf("Stat %s: %v", path, err)
	}

	files := []string{path}
	if info.IsDir() {
		files, err = filepath.Glob(filepath.Join(path, "*.csv"))
		if err != nil {
			log.Fatalf("List %s: %v", path, err)
		}
	}

	meters := store.New()
	for _, file := range files {
		f, err := os.Open(file)
		if err != nil {
			log.Fatalf("Open %s: %v", file, err)
		}
		load, err := ingest.ParseLoadCSV(f)
		f.Close()
		if err != nil {
			log.Fatalf("Parse %s: %v", file, err)
		}
		if target > 0 {
			load, err = load.Resample(target, nil)
			if err != nil {
				log.Fatalf("Resample %s: %v", file, err)
			}
		}
		id := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
		meters.AddMeter(id, load)
	}
	return meters
}

func report(fleet *der.Simulation, meterCount int) {
	fmt.Printf("Meters simulated: %d\n", meterCount)
	fmt.Printf("Pre-DER energy:   %.2f kWh\n", gridTotal(fleet.PreTotal288()))
	fmt.Printf("Post-DER energy:  %.2f kWh\n", gridTotal(fleet.PostTotal288()))
	fmt.Printf("DER throughput:   %.2f kWh\n", gridTotal(fleet.DER.TotalFrame288()))
	fmt.Println()

	fmt.Println("Pre-DER average kW by month-hour:")
	fmt.Println(fleet.PreAverage288())
	fmt.Println("Post-DER average kW by month-hour:")
	fmt.Println(fleet.PostAverage288())
	fmt.Println("Post-DER peak kW by month-hour:")
	fmt.Println(fleet.PostPeak288())
}

func gridTotal(g *frame.Frame288) float64 {
	var total float64
	for month := 1; month <= 12; month++ {
		for hour := 0; hour < 24; hour++ {
			v, _ := g.ValueAt(hour, month)
			total += v
		}
	}
	return total
}
