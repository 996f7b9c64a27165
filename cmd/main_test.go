package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"fastbreak/internal/adapters/http/api"
	app "fastbreak/internal/app"
	"fastbreak/internal/config"
	"fastbreak/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		ctx := context.Background()

		convey.Convey("When testing configuration loading", func() {
			_ = os.Setenv("FASTBREAK_ADDR", ":8080")
			_ = os.Setenv("FASTBREAK_DRY_RUN", "true")
			defer func() {
				_ = os.Unsetenv("FASTBREAK_ADDR")
				_ = os.Unsetenv("FASTBREAK_DRY_RUN")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.DryRun, convey.ShouldBeTrue)
			})
		})

		convey.Convey("When building the service from configuration", func() {
			cfg := config.New()
			cfg.DryRun = true
			svc := buildService(ctx, cfg, logger.Get())

			convey.Convey("Then the service should be usable end to end", func() {
				convey.So(svc, convey.ShouldNotBeNil)

				// No projections file in the test directory, so the run
				// degrades to an empty report instead of failing.
				rep, err := svc.RunOnce(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(rep, convey.ShouldNotBeNil)
				convey.So(rep.ProjectionCount, convey.ShouldEqual, 0)
				convey.So(rep.Suggestion, convey.ShouldBeNil)
			})
		})

		convey.Convey("When testing HTTP server creation", func() {
			svc := app.New()
			mux := http.NewServeMux()
			apiServer := api.NewServer(svc, svc, 100)
			apiServer.Register(ctx, mux)

			convey.Convey("Then registered routes should answer", func() {
				rec := httptest.NewRecorder()
				mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
				convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)

				rec = httptest.NewRecorder()
				mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/report", nil))
				convey.So(rec.Code, convey.ShouldEqual, http.StatusServiceUnavailable)
			})
		})
	})
}
