package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/signalsfoundry/satlink-planner/catalog"
	"github.com/signalsfoundry/satlink-planner/core"
	"github.com/signalsfoundry/satlink-planner/internal/debounce"
	"github.com/signalsfoundry/satlink-planner/internal/logging"
	"github.com/signalsfoundry/satlink-planner/internal/observability"
)

func main() {
	scenarioPath := flag.String("scenario", "configs/mission_scenario.json", "Path to a JSON mission scenario")
	configPath := flag.String("config", "", "Path to an optional YAML planner config")
	serve := flag.Bool("serve", false, "Keep running: serve Prometheus metrics and recompute on scenario changes")
	metricsAddr := flag.String("metrics-addr", "", "HTTP address for Prometheus /metrics (overrides config)")
	flag.Parse()

	log := logging.NewFromEnv()
	ctx := context.Background()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		log.Error(ctx, "failed to load planner config", logging.String("error", err.Error()))
		os.Exit(1)
	}
	if *metricsAddr != "" {
		cfg.Metrics.Addr = *metricsAddr
	}

	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv(), log)
	if err != nil {
		log.Error(ctx, "failed to initialise tracing", logging.String("error", err.Error()))
		os.Exit(1)
	}
	defer observability.ShutdownWithTimeout(ctx, shutdownTracing, log)

	svc := core.NewTimelineService(log)
	svc.Buffer = cfg.TransitionBuffer()

	store := catalog.NewStore()

	// The scenario holder keeps the most recently parsed scenario so
	// the serve-mode recompute always pairs a route with the catalog
	// snapshot built from the same document.
	var (
		scenarioMu sync.Mutex
		scenario   *core.MissionScenario
	)
	loadFn := func(path string) (*catalog.Snapshot, error) {
		sc, err := loadScenario(path)
		if err != nil {
			return nil, err
		}
		scenarioMu.Lock()
		scenario = sc
		scenarioMu.Unlock()
		return catalog.NewSnapshot(sc.Satellites), nil
	}

	if !*serve {
		snap, err := loadFn(*scenarioPath)
		if err != nil {
			log.Error(ctx, "failed to load scenario", logging.String("error", err.Error()))
			os.Exit(1)
		}
		store.Swap(snap)

		timeline, err := svc.ComputeTimeline(ctx, computeInput(scenario, store.Snapshot()))
		if err != nil {
			log.Error(ctx, "timeline computation failed", logging.String("error", err.Error()))
			os.Exit(1)
		}
		printTimeline(os.Stdout, timeline)
		return
	}

	collector, err := observability.NewTimelineCollector(nil)
	if err != nil {
		log.Error(ctx, "failed to initialise metrics collector", logging.String("error", err.Error()))
		os.Exit(1)
	}
	metricsSrv := serveMetrics(cfg.Metrics.Addr, collector, log)

	recompute := debounce.New(cfg.Debounce(), func() {
		scenarioMu.Lock()
		sc := scenario
		scenarioMu.Unlock()
		if sc == nil {
			return
		}

		start := time.Now()
		timeline, err := svc.ComputeTimeline(ctx, computeInput(sc, store.Snapshot()))
		collector.ObserveComputation(time.Since(start), err)
		if err != nil {
			log.Error(ctx, "timeline recompute failed", logging.String("error", err.Error()))
			return
		}
		collector.RecordTimeline(time.Now(), timeline)
		log.Info(ctx, "timeline recomputed",
			logging.Int("segments", len(timeline.Segments)),
			logging.Int("advisories", len(timeline.Advisories)),
			logging.Duration("elapsed", time.Since(start)),
		)
	})
	defer recompute.Stop()

	// Every catalog swap (initial load included) schedules a recompute.
	store.Subscribe(func(*catalog.Snapshot) { recompute.Trigger() })

	watcher, err := catalog.NewWatcher(store, *scenarioPath, loadFn, log)
	if err != nil {
		log.Error(ctx, "failed to create scenario watcher", logging.String("error", err.Error()))
		os.Exit(1)
	}
	if err := watcher.Start(); err != nil {
		log.Error(ctx, "failed to start scenario watcher", logging.String("error", err.Error()))
		os.Exit(1)
	}
	defer watcher.Close()

	log.Info(ctx, "planner running",
		logging.String("scenario", *scenarioPath),
		logging.String("metrics_addr", cfg.Metrics.Addr),
	)

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	<-stopCtx.Done()

	log.Info(ctx, "shutting down planner")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if metricsSrv != nil {
		_ = metricsSrv.Shutdown(shutdownCtx)
	}
}

func loadScenario(path string) (*core.MissionScenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return core.LoadMissionScenario(f)
}

func computeInput(sc *core.MissionScenario, snap *catalog.Snapshot) core.ComputeInput {
	return core.ComputeInput{
		Route:            sc.Route,
		Config:           sc.Config,
		ExclusionWindows: sc.ExclusionWindows,
		Overrides:        sc.Overrides,
		Catalog:          snap,
	}
}

func serveMetrics(addr string, collector *observability.TimelineCollector, log logging.Logger) *http.Server {
	if collector == nil {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())

	srv := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn(context.Background(), "metrics server exited", logging.String("error", err.Error()))
		}
	}()

	log.Info(context.Background(), "serving Prometheus metrics", logging.String("addr", addr))
	return srv
}
