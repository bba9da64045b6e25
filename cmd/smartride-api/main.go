// README: Entry point; loads config, wires services, starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/time/rate"

	"smartride/internal/config"
	httptransport "smartride/internal/http"
	"smartride/internal/infra"
	mapsadapter "smartride/internal/maps"
	"smartride/internal/metrics"
	"smartride/internal/modules/fare"
	"smartride/internal/modules/matching"
	"smartride/internal/modules/ride"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal(err)
	}
	defer dbPool.Close()

	redisClient := infra.NewRedis(cfg.Redis.Addr)

	collector := metrics.NewCollector()
	if cfg.MetricsAddr != "" {
		collector.Serve(cfg.MetricsAddr)
	}

	mapsClient, err := mapsadapter.NewClient(cfg.Maps.APIKey)
	if err != nil {
		log.Fatal(err)
	}
	// One limiter shared by all Maps calls so a bursty search cannot
	// overwhelm the upstream API.
	limiter := rate.NewLimiter(rate.Limit(cfg.Maps.QPS), cfg.Maps.Burst)

	geocoder := mapsadapter.NewGeocoder(mapsClient, limiter, redisClient, collector)
	routeService := mapsadapter.NewRouteService(mapsClient, limiter, collector)

	classifier := matching.NewClassifier(geocoder, routeService, cfg.Matching)
	matchingSvc := matching.NewService(classifier, cfg.Matching, collector)

	fareSvc := fare.NewService(cfg.Fare, routeService)

	rideStore := ride.NewStore(dbPool)

	handler := httptransport.NewRouter(rideStore, matchingSvc, fareSvc)
	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler}

	go func() {
		<-ctx.Done()
		_ = server.Shutdown(context.Background())
	}()

	log.Printf("listening on %s", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
