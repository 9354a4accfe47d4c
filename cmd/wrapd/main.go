package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"MarketWrap/internal/config"
	"MarketWrap/internal/market"
	"MarketWrap/internal/news"
	"MarketWrap/internal/scheduler"
	"MarketWrap/internal/server"
	"MarketWrap/internal/store"
	"MarketWrap/internal/wrap"
)

func main() {
	_ = godotenv.Load()

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()
	log.Info("MarketWrap starting")

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal("load config", zap.Error(err))
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("config validation", zap.Error(err))
	}

	// Provider chains: keyless sources are simply not added, so the
	// clients fall through to whatever is configured.
	var quoteSources []market.QuoteSource
	var barSources []market.BarSource
	if k := cfg.Providers.PolygonAPIKey; k != "" {
		p := market.NewPolygonSource(k, cfg.Proxy)
		quoteSources = append(quoteSources, p)
		barSources = append(barSources, p)
	}
	if k := cfg.Providers.FinnhubAPIKey; k != "" {
		f := market.NewFinnhubSource(k, cfg.Proxy)
		quoteSources = append(quoteSources, f)
		barSources = append(barSources, f)
	}
	if cfg.Providers.YahooEnabled {
		y := market.NewYahooSource(cfg.Proxy)
		quoteSources = append(quoteSources, y)
		barSources = append(barSources, y)
	}
	for _, s := range quoteSources {
		log.Info("market source enabled", zap.String("source", s.Name()))
	}
	marketClient := market.NewClient(quoteSources, barSources, nil, log)

	var newsSources []news.Source
	if k := cfg.Providers.NewsAPIKey; k != "" {
		newsSources = append(newsSources, news.NewNewsAPISource(k, cfg.Proxy))
	}
	if k := cfg.Providers.FinnhubAPIKey; k != "" {
		newsSources = append(newsSources, news.NewFinnhubSource(k, cfg.Proxy))
	}
	newsClient := news.NewClient(newsSources, nil, log)

	var st store.Store
	if cfg.Database.SQLitePath != "" {
		ss, err := store.NewSQLiteStore(cfg.Database.SQLitePath)
		if err != nil {
			log.Warn("sqlite unavailable, using in-memory store", zap.Error(err))
			st = store.NewMemoryStore()
		} else {
			st = ss
		}
	} else {
		st = store.NewMemoryStore()
	}
	defer st.Close()

	engine := wrap.NewEngine(marketClient, newsClient,
		cfg.Universe.Tickers, cfg.Universe.Benchmark, cfg.Universe.NewsLimit, log)
	runner := wrap.NewRunner(engine, st, nil, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.New(ctx, runner, log)
	if err := sched.Register(cfg.Schedule.WrapCron); err != nil {
		log.Fatal("register cron", zap.Error(err))
	}
	sched.Start()
	defer sched.Stop()

	srv := server.New(runner, st, cfg.Server.CronSecret, nil, log)
	go func() {
		log.Info("http server listening", zap.String("addr", cfg.Server.Addr))
		if err := srv.Run(cfg.Server.Addr); err != nil {
			log.Fatal("http server", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("shutdown signal received, stopping")
	cancel()
	log.Info("MarketWrap stopped")
}
