package main

import (
	"flag"
	"log"
	"os"

	"github.com/skylens/routemetrics/internal/config"
	"github.com/skylens/routemetrics/internal/database"
	"github.com/skylens/routemetrics/internal/ingest"
	"github.com/skylens/routemetrics/internal/kpi"
	"github.com/skylens/routemetrics/internal/pipeline"
	"github.com/skylens/routemetrics/internal/repository"
)

// Loads raw booking and flight CSV exports into the warehouse and,
// unless told otherwise, runs the pipeline so the marts are fresh.
func main() {
	bookingsPath := flag.String("bookings", "", "path to the bookings CSV export")
	flightsPath := flag.String("flights", "", "path to the flights CSV export")
	skipRun := flag.Bool("skip-run", false, "load raw tables without rebuilding the marts")
	flag.Parse()

	if *bookingsPath == "" && *flightsPath == "" {
		log.Fatal("Nothing to do: pass -bookings and/or -flights")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	db, err := database.Open(database.Config{Path: cfg.DBPath})
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer db.Close()

	rawRepo := repository.NewRawRepository(db)

	if *bookingsPath != "" {
		f, err := os.Open(*bookingsPath)
		if err != nil {
			log.Fatal("Failed to open bookings file:", err)
		}
		bookings, err := ingest.ParseBookings(f)
		f.Close()
		if err != nil {
			log.Fatal("Failed to parse bookings:", err)
		}
		if err := rawRepo.InsertBookings(bookings); err != nil {
			log.Fatal("Failed to store bookings:", err)
		}
		log.Printf("Loaded %d bookings from %s", len(bookings), *bookingsPath)
	}

	if *flightsPath != "" {
		f, err := os.Open(*flightsPath)
		if err != nil {
			log.Fatal("Failed to open flights file:", err)
		}
		flights, err := ingest.ParseFlights(f)
		f.Close()
		if err != nil {
			log.Fatal("Failed to parse flights:", err)
		}
		if err := rawRepo.InsertFlights(flights); err != nil {
			log.Fatal("Failed to store flights:", err)
		}
		log.Printf("Loaded %d flights from %s", len(flights), *flightsPath)
	}

	if *skipRun {
		return
	}

	params := cfg.KPIParams
	engine, err := kpi.NewEngine(&params)
	if err != nil {
		log.Fatal("Failed to build KPI engine:", err)
	}
	runner := pipeline.NewRunner(
		rawRepo,
		repository.NewMartRepository(db),
		repository.NewKPIRepository(db),
		repository.NewRunRepository(db),
		engine,
	)
	if _, err := runner.Run(); err != nil {
		log.Fatal("Pipeline run failed:", err)
	}
}
