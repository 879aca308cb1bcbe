package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/actionproxy/core/action"
	"github.com/dmitrymomot/actionproxy/core/config"
	"github.com/dmitrymomot/actionproxy/core/health"
	"github.com/dmitrymomot/actionproxy/core/httpaction"
	"github.com/dmitrymomot/actionproxy/core/instrument"
	"github.com/dmitrymomot/actionproxy/core/logger"
	"github.com/dmitrymomot/actionproxy/core/proxy"
	"github.com/dmitrymomot/actionproxy/integration/redisaction"
)

func runCmd() *cobra.Command {
	var (
		user     string
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Fetch GitHub repositories and the current xkcd comic through the router",
		RunE: func(cmd *cobra.Command, args []string) error {
			var cfg Config
			if err := config.Load(&cfg); err != nil {
				return err
			}
			if user != "" {
				cfg.GithubUser = user
			}

			log := logger.New(
				logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
				logger.WithFormat(cfg.LogFormat),
				logger.WithOutput(cmd.ErrOrStderr()),
				logger.WithAttr(logger.Component(cfg.AppName)),
			)

			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)

			return run(cmd.Context(), cfg, runOptions{
				out:      cmd.OutOrStdout(),
				log:      log,
				registry: reg,
				interval: interval,
			})
		},
	}

	cmd.Flags().StringVarP(&user, "user", "u", "", "GitHub user whose repositories are listed (overrides GITHUB_USER)")
	cmd.Flags().DurationVar(&interval, "interval", 0, "Repeat the run at this interval until interrupted")

	return cmd
}

type runOptions struct {
	out      io.Writer
	log      *slog.Logger
	registry *prometheus.Registry
	interval time.Duration
}

// sample holds the dispatcher and the resources it owns.
type sample struct {
	dispatcher *action.Dispatcher
	redis      *redis.Client
}

func (s *sample) Close() {
	s.dispatcher.Stop()
	if s.redis != nil {
		_ = s.redis.Close()
	}
}

// monitor serves Prometheus metrics and health probes.
func (s *sample) monitor(reg *prometheus.Registry, log *slog.Logger) http.Handler {
	var checks []health.Check
	if s.redis != nil {
		checks = append(checks, redisaction.Healthcheck(s.redis))
	}

	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.HandleFunc("GET /health/live", health.Liveness)
	mux.Handle("GET /health/ready", health.Readiness(log, checks...))
	return mux
}

// newSample builds the router, wraps it in instrumentation and installs it
// into a channel-transport dispatcher.
func newSample(ctx context.Context, cfg Config, log *slog.Logger, reg prometheus.Registerer) (*sample, error) {
	client := &http.Client{Timeout: cfg.HTTPTimeout}

	github, err := httpaction.New(Sample, cfg.GithubBaseURL,
		httpaction.WithClient(client),
		httpaction.WithLogger(log.With(logger.Component("github"))))
	if err != nil {
		return nil, err
	}

	xkcd, err := httpaction.New(Sample, cfg.XkcdBaseURL,
		httpaction.WithClient(client),
		httpaction.WithLogger(log.With(logger.Component("xkcd"))))
	if err != nil {
		return nil, err
	}

	builder, err := proxy.NewBuilder(Sample, proxy.WithLogger(log.With(logger.Component("router"))))
	if err != nil {
		return nil, err
	}
	if err := builder.Add(github, proxy.Label("github")); err != nil {
		return nil, err
	}
	if err := builder.Add(xkcd, proxy.Label("xkcd")); err != nil {
		return nil, err
	}

	s := &sample{}
	if cfg.Redis.ConnectionURL != "" {
		s.redis, err = redisaction.Connect(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		outbox := redisaction.New(Sample, s.redis,
			redisaction.WithKey(cfg.Redis.Key),
			redisaction.WithLogger(log.With(logger.Component("outbox"))))
		if err := builder.Add(outbox, proxy.Label("outbox")); err != nil {
			_ = s.redis.Close()
			return nil, err
		}
	}

	router, err := builder.Build()
	if err != nil {
		return nil, err
	}

	var h action.Handler = router
	h = instrument.Tracing(h, instrument.WithTracerName(cfg.AppName))
	h = instrument.Metrics(h, instrument.WithRegistry(reg))
	h = action.WithLogging(h, log)

	s.dispatcher = action.NewDispatcher(
		action.WithChannelTransport(cfg.DispatchBuffer, action.WithWorkers(cfg.DispatchWorkers)),
		action.WithLogger(log.With(logger.Component("dispatcher"))),
		action.WithHandler(h),
	)

	return s, nil
}

func run(ctx context.Context, cfg Config, opts runOptions) error {
	s, err := newSample(ctx, cfg, opts.log, opts.registry)
	if err != nil {
		return err
	}
	defer s.Close()

	eg, ctx := errgroup.WithContext(ctx)
	runCtx, finish := context.WithCancel(ctx)

	if cfg.MetricsAddr != "" {
		srv := &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           s.monitor(opts.registry, opts.log),
			ReadHeaderTimeout: 5 * time.Second,
		}
		eg.Go(func() error {
			opts.log.Info("monitoring server started", logger.Key("addr", cfg.MetricsAddr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		eg.Go(func() error {
			<-runCtx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	eg.Go(func() error {
		defer finish()

		for {
			if err := once(runCtx, s, cfg, opts.out); err != nil {
				if interrupted(runCtx, err) {
					opts.log.Info("run interrupted")
					return nil
				}
				return err
			}
			if opts.interval <= 0 {
				return nil
			}

			select {
			case <-runCtx.Done():
				return nil
			case <-time.After(opts.interval):
			}
		}
	})

	return eg.Wait()
}

// interrupted reports whether err only reflects the run being stopped.
func interrupted(ctx context.Context, err error) bool {
	if ctx.Err() == nil {
		return false
	}
	return errors.Is(err, context.Canceled) || errors.Is(err, action.ErrCancelled)
}

// once executes the GitHub and xkcd actions concurrently and prints results.
func once(ctx context.Context, s *sample, cfg Config, out io.Writer) error {
	repos := &GithubRepos{User: cfg.GithubUser}
	comic := &XkcdComic{}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return s.dispatcher.Execute(ctx, repos)
	})
	eg.Go(func() error {
		return s.dispatcher.Execute(ctx, comic)
	})
	if err := eg.Wait(); err != nil {
		return err
	}

	fmt.Fprintf(out, "%s has %d public repositories\n", repos.User, len(repos.Repos))
	for _, r := range repos.Repos {
		fmt.Fprintf(out, "  %-40s %5d stars\n", r.Name, r.Stars)
	}
	fmt.Fprintf(out, "xkcd #%d: %s\n", comic.Comic.Num, comic.Comic.Title)

	if s.redis != nil {
		notice := Notice{Repos: len(repos.Repos), Comic: comic.Comic.Num, Finished: time.Now()}
		if err := s.dispatcher.Execute(ctx, notice); err != nil {
			return err
		}
		fmt.Fprintf(out, "notice published to %s\n", cfg.Redis.Key)
	}

	return nil
}
