// Web front-end for the deskfit tools. Serves a single-page command box
// where the first words of the input select a tool and the rest of the
// line becomes its argument.
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/deskfit/deskfit-mcp-server/internal/almanac"
	"github.com/deskfit/deskfit-mcp-server/internal/calculator"
	"github.com/deskfit/deskfit-mcp-server/internal/currency"
	"github.com/deskfit/deskfit-mcp-server/internal/dictionary"
	"github.com/deskfit/deskfit-mcp-server/internal/geo"
	"github.com/deskfit/deskfit-mcp-server/internal/infra"
	"github.com/deskfit/deskfit-mcp-server/internal/news"
	"github.com/deskfit/deskfit-mcp-server/internal/timezone"
	"github.com/deskfit/deskfit-mcp-server/internal/translate"
	"github.com/deskfit/deskfit-mcp-server/internal/weather"
	"github.com/deskfit/deskfit-mcp-server/internal/websearch"
	"github.com/deskfit/deskfit-mcp-server/tools"
)

func main() {
	if os.Getenv("GIN_MODE") != "release" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found, using system environment")
		}
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	addr := os.Getenv("WEBUI_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	keywords, err := loadKeywords(os.Getenv("WEBUI_KEYWORD_MAP"))
	if err != nil {
		log.Fatalf("Keyword map error: %v", err)
	}

	cache := infra.NewCache(infra.DefaultMaxCacheEntries)
	defer cache.Close()

	clients := tools.Clients{
		Almanac:    almanac.NewEngine(),
		Calculator: calculator.NewEvaluator(),
		Weather:    weather.NewClient(weather.WithLogger(logger), weather.WithCache(cache)),
		Currency:   currency.NewClient(currency.WithLogger(logger), currency.WithCache(cache)),
		Translate:  translate.NewClient(translate.WithLogger(logger), translate.WithCache(cache)),
		Dictionary: dictionary.NewClient(dictionary.WithLogger(logger), dictionary.WithCache(cache)),
		Timezone:   timezone.NewClient(timezone.WithLogger(logger), timezone.WithCache(cache)),
		News:       news.NewClient(news.WithLogger(logger), news.WithCache(cache)),
		WebSearch:  websearch.NewClient(websearch.WithLogger(logger), websearch.WithCache(cache)),
		Geo:        geo.NewClient(geo.WithLogger(logger), geo.WithCache(cache)),
	}

	bootID := uuid.NewString()
	handler, err := NewWebHandler(NewDispatcher(clients), keywords, logger, bootID)
	if err != nil {
		log.Fatalf("Handler setup error: %v", err)
	}

	gin.SetMode(os.Getenv("GIN_MODE"))
	engine := gin.New()
	engine.Use(gin.Recovery())
	handler.Routes(engine)

	logger.Info("Starting deskfit web UI", "addr", addr, "boot_id", bootID, "keywords", len(keywords))

	srv := &http.Server{Addr: addr, Handler: engine}
	runServerWithGracefulShutdown(srv, logger)
}

// runServerWithGracefulShutdown handles the server lifecycle.
func runServerWithGracefulShutdown(srv *http.Server, logger *slog.Logger) {
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Listen error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down web UI")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	logger.Info("Server exited")
}
