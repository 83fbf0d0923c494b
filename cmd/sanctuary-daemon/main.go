package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/andrescamacho/sanctuary-go/internal/adapters/metrics"
	"github.com/andrescamacho/sanctuary-go/internal/application/progression/services"
	"github.com/andrescamacho/sanctuary-go/internal/infrastructure/bootstrap"
	"github.com/andrescamacho/sanctuary-go/internal/infrastructure/config"
	"github.com/andrescamacho/sanctuary-go/internal/infrastructure/pidfile"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	statusFlag := flag.Bool("status", false, "Report whether a daemon is running and exit")
	flag.Parse()

	fmt.Println("Sanctuary Daemon")
	fmt.Println("================")

	fmt.Println("Loading configuration...")
	cfg := config.MustLoadConfig(*configPath)

	pf := pidfile.New(cfg.Daemon.PIDFile)

	if *statusFlag {
		pid, running, err := pf.Status()
		if err != nil {
			log.Fatalf("Failed to read PID file: %v", err)
		}
		if running {
			fmt.Printf("Daemon is running (PID %d)\n", pid)
		} else {
			fmt.Println("Daemon is not running")
			os.Exit(1)
		}
		return
	}

	// Acquire PID file lock to prevent multiple instances
	fmt.Printf("Acquiring PID file lock: %s\n", pf.Path())
	if err := pf.Acquire(); err != nil {
		log.Fatalf("Failed to acquire PID file lock: %v", err)
	}
	fmt.Println("PID file lock acquired")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, cfg)
	stop()

	if releaseErr := pf.Release(); releaseErr != nil {
		log.Printf("Warning: failed to release PID file: %v", releaseErr)
	}
	if err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	fmt.Printf("Opening %s store...\n", cfg.Database.Type)
	app, err := bootstrap.New(cfg, bootstrap.Options{})
	if err != nil {
		return err
	}
	defer app.Close()
	fmt.Printf("Engine ready (%d items, %d expeditions in catalog)\n",
		len(app.Catalog.Items()), len(app.Catalog.Expeditions()))

	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle(cfg.Metrics.Path, promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
		metricsServer = &http.Server{
			Addr:    fmt.Sprintf("%s:%d", cfg.Metrics.Host, cfg.Metrics.Port),
			Handler: mux,
		}

		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("Metrics server error: %v", err)
			}
		}()
		fmt.Printf("Metrics available at http://%s%s\n", metricsServer.Addr, cfg.Metrics.Path)

		app.Financial.Start(ctx, cfg.Daemon.MetricsPollInterval)
		defer app.Financial.Stop()
	}

	reconciler := services.NewReconciler(
		app.Mediator,
		cfg.Daemon.ReconcileInterval,
		cfg.Daemon.ReconcileRate,
		cfg.Daemon.ReconcileBurst,
	)
	reconciler.Start(ctx)
	fmt.Printf("Reconciling expeditions every %s\n", cfg.Daemon.ReconcileInterval)

	fmt.Println("\n✓ Daemon is running")
	fmt.Println("Press Ctrl+C to stop")

	<-ctx.Done()
	fmt.Println("\nShutdown signal received, stopping daemon...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Daemon.ShutdownTimeout)
	defer cancel()

	done := make(chan struct{})
	go func() {
		reconciler.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-shutdownCtx.Done():
		log.Printf("Reconciler did not stop within %s", cfg.Daemon.ShutdownTimeout)
	}

	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("Warning: metrics server shutdown: %v", err)
		}
	}

	fmt.Println("Daemon stopped")
	return nil
}
