package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"truck-route-service/internal/adapters/cache"
	"truck-route-service/internal/adapters/elevation"
	"truck-route-service/internal/adapters/llm"
	"truck-route-service/internal/adapters/routing"
	"truck-route-service/internal/api"
	"truck-route-service/internal/config"
	"truck-route-service/internal/platform/db"
	"truck-route-service/internal/ports"
	"truck-route-service/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// main is the application composition root.
// It wires concrete adapters (routing, elevation, Gemini, Postgres, Redis)
// behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := config.Get("PORT", "8080")
	elevationURL := config.Get("ELEVATION_BASE_URL", "https://api.open-elevation.com")
	geminiModel := config.Get("GEMINI_MODEL", "gemini-2.0-flash")
	transportMode := config.Get("TRANSPORT_MODE", "truck")

	routingKey, err := config.MustGet("ROUTING_API_KEY")
	if err != nil {
		log.Fatal(err)
	}

	geminiKey, err := config.MustGet("GEMINI_API_KEY")
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	router, err := routing.NewClient(routingKey)
	if err != nil {
		log.Fatal(err)
	}

	elev, err := elevation.NewClient(elevationURL)
	if err != nil {
		log.Fatal(err)
	}

	gemini, err := llm.NewGeminiProvider(ctx, geminiKey, geminiModel)
	if err != nil {
		log.Fatal(err)
	}

	// Caches are optional: either backing store can be absent in local runs.
	var geocodes ports.GeocodeCache
	if databaseURL := config.Get("DATABASE_URL", ""); databaseURL != "" {
		pg, err := db.Open(databaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer pg.Close()

		if err := cache.InitSchema(ctx, pg); err != nil {
			log.Fatal(err)
		}

		geocodes = cache.NewPGGeocodeCache(pg)
	} else {
		log.Println("DATABASE_URL not set; geocode caching disabled")
	}

	var assessments ports.AssessmentCache
	if redisAddr := config.Get("REDIS_ADDR", ""); redisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     redisAddr,
			Password: config.Get("REDIS_PASSWORD", ""),
		})
		if err := client.Ping(ctx).Err(); err != nil {
			log.Fatalf("redis ping failed: %v", err)
		}
		defer client.Close()

		assessments = cache.NewRedisAssessmentCache(client)
	} else {
		log.Println("REDIS_ADDR not set; assessment caching disabled")
	}

	planner, err := services.NewRoutePlanner(router, router, elev, gemini, services.RoutePlannerOptions{
		Geocodes:    geocodes,
		Assessments: assessments,
		Mode:        transportMode,
		MaxInFlight: config.GetInt("MAX_IN_FLIGHT", 5),
	})
	if err != nil {
		log.Fatal(err)
	}

	handler := api.NewRouter(planner, gemini)

	// Timeouts are tuned for cold-cache planning (several external API calls
	// per request).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
