package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Werneck0live/painel-gamificacao/internal/admin"
	"github.com/Werneck0live/painel-gamificacao/internal/broker"
	"github.com/Werneck0live/painel-gamificacao/internal/config"
	"github.com/Werneck0live/painel-gamificacao/internal/dashboard"
	"github.com/Werneck0live/painel-gamificacao/internal/db"
	"github.com/Werneck0live/painel-gamificacao/internal/enrich"
	"github.com/Werneck0live/painel-gamificacao/internal/handlers"
	"github.com/Werneck0live/painel-gamificacao/internal/kpi"
	"github.com/Werneck0live/painel-gamificacao/internal/repository"
)

// cmd/api/main.go
func main() {
	config.LoadDotEnv()
	cfg := config.Load()

	// Logger JSON "global" - permite usar slog.Info/slog.Error/Warn em qualquer lugar
	_ = config.InitLogger(cfg.LogLevel)
	slog.Info("starting", "port", cfg.Port, "mongo_db", cfg.MongoDB, "delivery_target", cfg.DeliveryTarget)

	// HOOK: admin job (one-off)
	task := flag.String("task", "", "admin task: seed")
	flag.Parse()
	if *task != "" {
		switch *task {
		case "seed":
			// conecta somente o necessário para o seed
			client, err := db.NewMongoClient(cfg.MongoURI)
			if err != nil {
				slog.Error("mongo_connect_error", "err", err)
				os.Exit(1)
			}
			defer func() { _ = client.Disconnect(context.Background()) }()

			database := client.Database(cfg.MongoDB)
			logs := repository.NewActionLogRepository(database)
			kpis := repository.NewKPIRepository(database)
			if err := admin.SeedDashboard(context.Background(), logs, kpis, slog.Default()); err != nil {
				slog.Error("seed_failed", "err", err)
				os.Exit(1)
			}
			slog.Info("seed_done")
			return // encerra o processo sem subir HTTP
		default:
			slog.Error("unknown_admin_task", "task", *task)
			os.Exit(2)
		}
	}

	// conecta Mongo
	client, err := db.NewMongoClient(cfg.MongoURI)
	if err != nil {
		log.Fatalf("mongo connect error: %v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	// publisher (Rabbit)
	pub, err := broker.NewPublisher(cfg.RabbitURI, cfg.RabbitQueue)
	if err != nil {
		log.Fatalf("rabbitmq connect error: %v", err)
	}
	defer pub.Close()

	database := client.Database(cfg.MongoDB)
	actionLogs := repository.NewActionLogRepository(database)
	kpiRepo := repository.NewKPIRepository(database)

	ictx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := actionLogs.EnsureIndexes(ictx); err != nil {
		slog.Warn("ensure_indexes_error", "err", err)
	}
	cancel()

	cache := kpi.NewCache(kpiRepo, cfg.KpiFetchTimeout, slog.Default())
	enricher := enrich.NewEnricher(cache, cfg.DeliveryTarget, cfg.KpiConcurrency, slog.Default())
	coord := dashboard.NewCoordinator(actionLogs, enricher, cache, pub, slog.Default())

	dh := handlers.NewDashboardHandler(coord, cache, cfg.DeliveryTarget)
	ph := handlers.NewProfileHandler()

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", dh.Health)
	mux.HandleFunc("/api/players/", dh.PlayerCompanies)
	mux.HandleFunc("/api/kpis/", dh.KpiByID)
	mux.HandleFunc("/api/profile", ph.Profile)
	mux.HandleFunc("/api/teams/", ph.TeamAccess)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           logMiddleware(mux),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	// start server
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShutdown()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("graceful shutdown error", "err", err)
	}
	st := cache.Stats()
	slog.Info("stopped", "kpi_hits", st.Hits, "kpi_misses", st.Misses, "kpi_fetches", st.Fetches, "kpi_errors", st.Errors)
}

type statusRW struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusRW) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusRW) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

func logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		srw := &statusRW{ResponseWriter: w}
		next.ServeHTTP(srw, r)
		slog.Info("http_request",
			"method", r.Method, "path", r.URL.Path,
			"status", srw.status, "bytes", srw.bytes,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
