package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	srvnet "github.com/modu-apps/cell-eater/internal/net"
	"github.com/modu-apps/cell-eater/internal/sim"
	"github.com/modu-apps/cell-eater/logging"
	"github.com/modu-apps/cell-eater/logging/sinks"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("skipping .env: %v", err)
	}

	addr := envString("CELL_EATER_ADDR", ":8080")

	logCfg := logging.DefaultConfig()
	if raw := os.Getenv("CELL_EATER_LOG_SINKS"); raw != "" {
		logCfg.EnabledSinks = splitList(raw)
	}
	if level := os.Getenv("CELL_EATER_LOG_LEVEL"); level != "" {
		logCfg.MinimumSeverity = parseSeverity(level)
	}
	jsonPath := envString("CELL_EATER_LOG_JSON_PATH", "cell-eater-events.jsonl")
	logCfg.JSON.FilePath = jsonPath

	namedSinks := []logging.NamedSink{
		{Name: "console", Sink: sinks.NewConsoleSink()},
	}
	if logCfg.HasSink("json") {
		jsonSink, err := sinks.NewJSONSink(jsonPath)
		if err != nil {
			log.Fatalf("open json sink %s: %v", jsonPath, err)
		}
		namedSinks = append(namedSinks, logging.NamedSink{Name: "json", Sink: jsonSink})
	}
	events := logging.NewRouter(logCfg, namedSinks)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := events.Close(ctx); err != nil {
			log.Printf("event router close: %v", err)
		}
	}()

	worldCfg := sim.Config{
		Seed:        os.Getenv("CELL_EATER_SEED"),
		InitialFood: envInt("CELL_EATER_INITIAL_FOOD", 0),
		FoodDrip:    true,
	}
	world := sim.New(worldCfg, sim.Deps{Publisher: events})

	hub := srvnet.NewHub(world, events)
	stop := make(chan struct{})
	go hub.RunSimulation(stop)
	defer close(stop)

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	hub.Routes(router, events)

	log.Printf("cell-eater listening on %s (seed %q)", addr, world.Config().Seed)
	if err := router.Run(addr); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("%s: %v", key, err)
	}
	return n
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseSeverity(raw string) logging.Severity {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return logging.SeverityDebug
	case "warn", "warning":
		return logging.SeverityWarn
	case "error":
		return logging.SeverityError
	default:
		return logging.SeverityInfo
	}
}
