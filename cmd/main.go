package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"table-order/internal/config"
	"table-order/internal/database"
	"table-order/internal/httpx"
	"table-order/internal/logger"
	"table-order/internal/messaging"
	"table-order/internal/services/analytics"
	"table-order/internal/services/board"
	"table-order/internal/services/cart"
	"table-order/internal/services/menu"
	"table-order/internal/services/order"
	"table-order/internal/services/table"
)

func main() {
	var (
		mode       = flag.String("mode", "", "Service mode (api-server, board-subscriber)")
		configPath = flag.String("config", "config.yaml", "Path to config file")
		port       = flag.Int("port", 0, "HTTP port (overrides config)")
		prefetch   = flag.Int("prefetch", 1, "RabbitMQ prefetch count")
	)
	flag.Parse()

	if *mode == "" {
		fmt.Fprintf(os.Stderr, "Error: --mode flag is required\n")
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	log := logger.New(*mode)
	requestID := logger.GenerateRequestID()

	log.Info("service_started", fmt.Sprintf("Starting %s", *mode), requestID, map[string]interface{}{
		"mode": *mode,
		"port": cfg.Server.Port,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("graceful_shutdown", "Received shutdown signal", requestID, nil)
		cancel()
	}()

	switch *mode {
	case "api-server":
		if err := runAPIServer(ctx, cfg, log); err != nil {
			log.Error("service_failed", "API server failed", requestID, err, nil)
			os.Exit(1)
		}
	case "board-subscriber":
		if err := runBoardSubscriber(ctx, cfg, log, *prefetch); err != nil {
			log.Error("service_failed", "Board subscriber failed", requestID, err, nil)
			os.Exit(1)
		}
	default:
		log.Error("validation_failed", fmt.Sprintf("Unknown mode: %s", *mode), requestID, nil, nil)
		os.Exit(1)
	}

	log.Info("service_stopped", "Service stopped gracefully", requestID, nil)
}

// runAPIServer wires storage, messaging and all HTTP services into one server
func runAPIServer(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	requestID := logger.GenerateRequestID()

	db, err := database.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	log.Info("db_connected", "Connected to PostgreSQL database", requestID, nil)

	if err := db.RunMigrations(ctx, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	conn, err := messaging.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}
	defer conn.Close()

	log.Info("rabbitmq_connected", "Connected to RabbitMQ", requestID, nil)

	publisher := messaging.NewPublisher(conn, log)

	menuService := menu.NewService(menu.NewPostgresRepository(db), publisher, log)
	if err := menuService.Seed(ctx, requestID); err != nil {
		return fmt.Errorf("failed to seed menu: %w", err)
	}

	cartService := cart.NewService(cart.NewPostgresStore(db), menuService, publisher, log)
	tableService := table.NewService(table.NewPostgresRepository(db), publisher, log)
	orderService := order.NewService(order.NewPostgresRepository(db), cartService, tableService, publisher, log)
	analyticsService := analytics.NewService(analytics.NewPostgresRepository(db), log)

	mux := http.NewServeMux()
	menu.NewHandler(menuService, log).Register(mux)
	cart.NewHandler(cartService, log).Register(mux)
	table.NewHandler(tableService, log).Register(mux)
	order.NewHandler(orderService, log).Register(mux)
	analytics.NewHandler(analyticsService, log).Register(mux)

	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(r.Context()); err != nil {
			httpx.WriteError(w, http.StatusServiceUnavailable, "database unreachable", "")
			return
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	server := httpx.NewServer(cfg.Server.Port, mux)

	log.Info("server_listening", fmt.Sprintf("API server listening on port %d", cfg.Server.Port), requestID, map[string]interface{}{
		"port": cfg.Server.Port,
	})
	return server.Run(ctx)
}

// runBoardSubscriber runs the kitchen display feed: consume change events,
// poll the API server, serve the board snapshot.
func runBoardSubscriber(ctx context.Context, cfg *config.Config, log *logger.Logger, prefetch int) error {
	requestID := logger.GenerateRequestID()

	conn, err := messaging.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}
	defer conn.Close()

	log.Info("rabbitmq_connected", "Connected to RabbitMQ", requestID, nil)

	hostname, _ := os.Hostname()
	consumer := messaging.NewConsumer(conn, log, messaging.BoardUpdatesQueue,
		fmt.Sprintf("board-%s", hostname), prefetch)

	b := board.New()
	poller := board.NewPoller(cfg.Board.APIURL, log)
	subscriber := board.NewSubscriber(b, poller, consumer,
		time.Duration(cfg.Board.PollIntervalSeconds)*time.Second, log)

	// The board itself is served read-only on the next port up so the
	// display and the API server can share a host in development.
	mux := http.NewServeMux()
	mux.HandleFunc("GET /board", httpx.WithLogging(log, func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, b.Snapshot())
	}))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	server := httpx.NewServer(cfg.Server.Port+1, mux)
	serverErr := make(chan error, 1)
	go func() { serverErr <- server.Run(ctx) }()

	log.Info("subscriber_started", "Board subscriber running", requestID, map[string]interface{}{
		"queue":         messaging.BoardUpdatesQueue,
		"api_url":       cfg.Board.APIURL,
		"poll_interval": cfg.Board.PollIntervalSeconds,
	})

	if err := subscriber.Run(ctx); err != nil {
		return err
	}
	return <-serverErr
}
