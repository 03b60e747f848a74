package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/okian/reelmatch/internal/config"
	"github.com/okian/reelmatch/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			_ = os.Setenv("REELMATCH_ADDR", ":8080")
			_ = os.Setenv("REELMATCH_MAX_RANK_LIMIT", "25")
			defer func() {
				_ = os.Unsetenv("REELMATCH_ADDR")
				_ = os.Unsetenv("REELMATCH_MAX_RANK_LIMIT")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				cfg, err := config.Load(context.Background())
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.MaxRankLimit, convey.ShouldEqual, 25)
			})
		})

		convey.Convey("When building the service from configuration", func() {
			cfg := config.New()
			cfg.MaxRankLimit = 7
			cfg.DefaultRankLimit = 5
			svc := newService(cfg, logger.Nop())

			convey.Convey("Then the configured limits are applied", func() {
				convey.So(svc.MaxRankLimit(), convey.ShouldEqual, 7)
				convey.So(svc.GetStats()["defaultRankLimit"], convey.ShouldEqual, 5)
			})
		})

		convey.Convey("When testing HTTP server creation", func() {
			srv := newHTTPServer(":0", http.NewServeMux())

			convey.Convey("Then HTTP server should carry the timeouts", func() {
				convey.So(srv.Addr, convey.ShouldEqual, ":0")
				convey.So(srv.ReadHeaderTimeout, convey.ShouldEqual, readHeaderTimeout)
				convey.So(srv.WriteTimeout, convey.ShouldEqual, writeTimeout)
			})
		})
	})
}

func TestMainIntegration(t *testing.T) {
	convey.Convey("Given main application integration", t, func() {
		svc := newService(config.New(), logger.Nop())
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()
		ts := httptest.NewServer(newMux(svc))
		defer ts.Close()

		convey.Convey("When scoring a pair over HTTP", func() {
			resp, err := http.Post(ts.URL+"/v1/pairs/score", "application/json",
				strings.NewReader(`{"profile1": {"id": "a"}, "profile2": {"id": "b"}}`))
			convey.So(err, convey.ShouldBeNil)
			defer func() { _ = resp.Body.Close() }()

			convey.Convey("Then all components work together", func() {
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)
			})
		})

		convey.Convey("When fetching the API description", func() {
			resp, err := http.Get(ts.URL + "/openapi.yaml")
			convey.So(err, convey.ShouldBeNil)
			defer func() { _ = resp.Body.Close() }()

			convey.Convey("Then the document is served", func() {
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)
			})
		})

		convey.Convey("When fetching health metrics", func() {
			resp, err := http.Get(ts.URL + "/healthz")
			convey.So(err, convey.ShouldBeNil)
			defer func() { _ = resp.Body.Close() }()

			convey.Convey("Then the exposition is served", func() {
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)
			})
		})
	})
}

func TestSystemMetrics(t *testing.T) {
	convey.Convey("Given main application components", t, func() {
		convey.Convey("When testing system metrics update", func() {
			convey.Convey("Then it should update metrics without panicking", func() {
				convey.So(updateSystemMetrics, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When the updater context is cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			done := make(chan struct{})
			go func() {
				startSystemMetricsUpdater(ctx)
				close(done)
			}()
			cancel()

			convey.Convey("Then the updater returns", func() {
				select {
				case <-done:
				case <-time.After(time.Second):
					t.Fatal("system metrics updater did not stop")
				}
			})
		})
	})
}

func TestRunConfigError(t *testing.T) {
	convey.Convey("Given an invalid configuration", t, func() {
		_ = os.Setenv("REELMATCH_ADDR", "")
		defer func() { _ = os.Unsetenv("REELMATCH_ADDR") }()

		convey.Convey("Then run fails before serving", func() {
			err := run(context.Background())
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(err.Error(), convey.ShouldContainSubstring, "failed to load config")
		})
	})
}
