package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/JuniaFaith/duffel-backend/cfg"
	"github.com/JuniaFaith/duffel-backend/internal/fare"
	"github.com/JuniaFaith/duffel-backend/pkg/duffel"
	"github.com/JuniaFaith/duffel-backend/pkg/idgen"
	"github.com/JuniaFaith/duffel-backend/pkg/logger"
	"github.com/JuniaFaith/duffel-backend/pkg/telemetry"
)

func main() {
	// ============
	// config
	// ============
	config, errCfg := cfg.Load()
	if errCfg != nil {
		log.Fatal(errCfg)
	}

	// ============
	// logger
	// ============
	zlogger := logger.NewZeroLog(config.AppEnv)

	// ============
	// telemetry
	// ============
	if config.Observability.OTLPEndpoint != "" {
		shutdownOtel, err := telemetry.Init(context.Background(),
			config.Observability.OTLPEndpoint,
			config.Observability.ServiceName,
			config.AppEnv,
		)
		if err != nil {
			log.Printf("WARNING: failed to initialize OpenTelemetry: %v", err)
			log.Printf("Continuing without tracing/metrics...")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdownOtel(ctx); err != nil {
					log.Printf("failed to shutdown OpenTelemetry: %v", err)
				}
			}()
		}
	}

	// ============
	// External Service
	// ============
	httpClient := &http.Client{
		Timeout: 30 * time.Second,
	}
	duffelClient := duffel.NewClient(httpClient,
		config.DuffelConfig.BaseURL,
		config.DuffelConfig.APIKey,
		config.DuffelConfig.APIVersion,
		zlogger,
	)

	// ============
	// Internal Service
	// ============
	generator, err := idgen.NewSnowflakeGenerator(config.NodeID)
	if err != nil {
		log.Fatal(err)
	}

	policy := fare.Policy{
		AllowedOrigins:     config.PolicyConfig.AllowedOrigins,
		DestinationPool:    config.PolicyConfig.DestinationPool,
		PreferHoldEligible: config.PolicyConfig.PreferHoldEligible,
	}
	if config.PolicyConfig.PriceCeilingAmount > 0 {
		policy.PriceCeiling = &fare.PriceCeiling{
			Amount:   config.PolicyConfig.PriceCeilingAmount,
			Currency: config.PolicyConfig.PriceCeilingCurrency,
		}
	}

	fareSvc := fare.NewService(duffelClient, policy, fare.DefaultPassenger(),
		config.SearchFanoutLimit, generator, zlogger)
	fareHandler := fare.NewFareHandler(fareSvc)

	// ============
	// HTTP
	// ============
	r := gin.Default()
	r.Use(otelgin.Middleware(config.Observability.ServiceName))
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       12 * time.Hour,
	}))

	fareHandler.RegisterRoutes(r)

	addr := fmt.Sprintf(":%s", config.AppPort)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
