package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"github.com/JeanExtreme002/FlightRadarAPI/internal/config"
	"github.com/JeanExtreme002/FlightRadarAPI/internal/storage"
	"github.com/JeanExtreme002/FlightRadarAPI/pkg/fr24"
	"github.com/JeanExtreme002/FlightRadarAPI/pkg/geo"
)

// Collector continuously polls the FlightRadar24 live feed for the configured
// regions and records the snapshots in PostgreSQL, so multiple consumers can
// share one data set without each hitting the upstream feed.
func main() {
	configPath := flag.String("config", "configs/config.json", "Path to configuration file")
	flag.Parse()

	log.Println("===========================================")
	log.Println("  FlightRadar24 Collector Service")
	log.Println("===========================================")

	// Credentials live in .env, not in the config file.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to load .env: %v", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	regions := cfg.Collector.EnabledRegions()
	if len(regions) == 0 {
		log.Fatal("Error: no enabled collection regions configured")
	}

	log.Printf("Configuration loaded from: %s", *configPath)
	log.Printf("Collection regions: %d enabled", len(regions))
	for _, region := range regions {
		log.Printf("  ✓ %s: %.4f, %.4f (%.0f km)",
			region.Name, region.Latitude, region.Longitude, region.RadiusM/1000)
	}
	log.Printf("Update interval: %d seconds", cfg.Collector.UpdateIntervalSeconds)

	log.Println("\nConnecting to database...")
	database, err := storage.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()
	log.Println("✓ Database connected")

	ctx := context.Background()
	if err := database.InitSchema(ctx); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}
	log.Println("✓ Database schema initialized")

	client, err := fr24.NewClient(fr24.ClientConfig{
		Email:    cfg.Account.Email,
		Password: cfg.Account.Password,
	})
	if err != nil {
		log.Fatalf("Failed to create FlightRadar24 client: %v", err)
	}
	if client.IsLoggedIn() {
		log.Println("✓ Logged in to FlightRadar24 account")
	} else {
		log.Println("Running with anonymous access")
	}

	for key, value := range cfg.Collector.FeedOptions {
		if err := client.SetTrackerOption(key, value); err != nil {
			log.Fatalf("Invalid feed option %q: %v", key, err)
		}
	}

	requestsPerMinute := cfg.Collector.RequestsPerMinute
	if requestsPerMinute <= 0 {
		requestsPerMinute = 30
	}

	collector := &Collector{
		repo:           storage.NewFlightRepository(database),
		db:             database,
		client:         client,
		regions:        regions,
		updateInterval: time.Duration(cfg.Collector.UpdateIntervalSeconds) * time.Second,
		limiter:        rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60), 1),
		regionStats:    make(map[string]*RegionStats),
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	runCtx, cancel := context.WithCancel(ctx)
	doneChan := make(chan struct{})
	go func() {
		defer close(doneChan)
		collector.Run(runCtx)
	}()

	log.Println("\n===========================================")
	log.Println("  Collector service started")
	log.Println("  Press Ctrl+C to stop")
	log.Println("===========================================")

	select {
	case sig := <-sigChan:
		log.Printf("\nReceived signal: %v", sig)
	case <-doneChan:
		log.Println("\nCollector stopped")
	}

	log.Println("Shutting down gracefully...")
	cancel()
	<-doneChan

	if _, err := client.Logout(); err != nil {
		log.Printf("Warning: logout failed: %v", err)
	}
	log.Println("✓ Collector service stopped")
}

// RegionStats tracks per-region collection statistics.
type RegionStats struct {
	Fetched      int
	LastUpdate   time.Time
	TotalUpdates int
}

// Collector manages the flight data collection process.
type Collector struct {
	repo           *storage.FlightRepository
	db             *storage.DB
	client         *fr24.Client
	regions        []config.CollectionRegion
	updateInterval time.Duration
	limiter        *rate.Limiter

	regionStats  map[string]*RegionStats
	totalUpdates int
}

// Run starts the collection loop.
func (c *Collector) Run(ctx context.Context) {
	ticker := time.NewTicker(c.updateInterval)
	defer ticker.Stop()

	log.Println("Performing initial data fetch...")
	c.update(ctx)
	log.Println("✓ Initial dataset populated")

	cleanupTicker := time.NewTicker(5 * time.Minute)
	defer cleanupTicker.Stop()

	statsTicker := time.NewTicker(30 * time.Second)
	defer statsTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.update(ctx)
		case <-cleanupTicker.C:
			c.cleanup(ctx)
		case <-statsTicker.C:
			c.printStats(ctx)
		}
	}
}

// update fetches flights from all enabled regions and stores them. Flights
// seen in overlapping regions are stored once; the first region wins.
func (c *Collector) update(ctx context.Context) {
	now := time.Now().UTC()
	c.totalUpdates++

	type flightWithRegion struct {
		flight *fr24.Flight
		region string
	}
	seen := make(map[string]flightWithRegion)

	for _, region := range c.regions {
		if err := c.limiter.Wait(ctx); err != nil {
			return
		}

		bounds := geo.BoundsAroundPoint(region.Latitude, region.Longitude, region.RadiusM)
		flights, err := c.client.GetFlights(&fr24.FlightFilter{Bounds: bounds.String()})
		if err != nil {
			log.Printf("✗ Failed to fetch region %s: %v (will retry on next cycle)", region.Name, err)
			continue
		}

		if c.regionStats[region.Name] == nil {
			c.regionStats[region.Name] = &RegionStats{}
		}
		stats := c.regionStats[region.Name]
		stats.Fetched = len(flights)
		stats.LastUpdate = now
		stats.TotalUpdates++

		for _, flight := range flights {
			if flight.Latitude == 0 && flight.Longitude == 0 {
				continue
			}
			if _, exists := seen[flight.ID]; !exists {
				seen[flight.ID] = flightWithRegion{flight: flight, region: region.Name}
			}
		}
	}

	stored := 0
	for _, entry := range seen {
		if err := c.repo.UpsertFlight(ctx, entry.flight, entry.region, now); err != nil {
			log.Printf("Error storing flight %s: %v", entry.flight.ID, err)
			continue
		}
		stored++
	}

	log.Printf("[%s] Update #%d: %d regions, %d unique flights, %d stored",
		now.Format("15:04:05"), c.totalUpdates, len(c.regions), len(seen), stored)
}

// cleanup marks stale flights inactive and prunes old position history.
func (c *Collector) cleanup(ctx context.Context) {
	if err := c.db.CleanupOldData(ctx, 2*time.Minute); err != nil {
		log.Printf("Error during cleanup: %v", err)
		return
	}
	log.Println("✓ Cleanup completed")
}

// printStats displays current statistics.
func (c *Collector) printStats(ctx context.Context) {
	stats, err := c.db.GetStats(ctx)
	if err != nil {
		log.Printf("Error getting stats: %v", err)
		return
	}

	log.Printf("📊 Stats: %d active, %d airborne | %d positions stored | %d total updates",
		stats["active_flights"],
		stats["airborne_flights"],
		stats["position_records"],
		c.totalUpdates,
	)
}
