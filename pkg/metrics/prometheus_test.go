package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When creating options", func() {
			namespaceOpt := WithNamespace("test-namespace")
			subsystemOpt := WithSubsystem("test-subsystem")
			histogramBucketsOpt := WithHistogramBuckets([]float64{0.1, 0.5, 1.0})
			registryOpt := WithPrometheusRegistry(prometheus.NewRegistry())

			Convey("Then they should be valid functions", func() {
				So(namespaceOpt, ShouldNotBeNil)
				So(subsystemOpt, ShouldNotBeNil)
				So(histogramBucketsOpt, ShouldNotBeNil)
				So(registryOpt, ShouldNotBeNil)
			})
		})
	})
}

func TestManagerCreation(t *testing.T) {
	Convey("Given manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "fastbreak")
				So(manager.subsystem, ShouldEqual, "advisor")
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test-namespace"),
				WithSubsystem("test-subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then it should honor the options", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "test-namespace")
				So(manager.subsystem, ShouldEqual, "test-subsystem")
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given metrics recording", t, func() {
		Convey("When recording run metrics", func() {
			Convey("Then it should record without panicking", func() {
				So(func() {
					RecordRun(125.0)
					RecordRunError()
					UpdateProjectionRows(480)
					UpdateRosterSize(13)
					UpdateWaiverSize(40)
				}, ShouldNotPanic)
			})
		})

		Convey("When recording match metrics", func() {
			Convey("Then it should record without panicking", func() {
				So(func() {
					RecordPlayerMatched()
					RecordPlayerUnmatched()
					RecordRecommendation("emitted")
					RecordRecommendation("none")
				}, ShouldNotPanic)
			})
		})

		Convey("When recording source fetch metrics", func() {
			Convey("Then it should record without panicking", func() {
				So(func() {
					RecordSourceFetch("projections", "ok")
					RecordSourceFetch("roster", "error")
					RecordSourceFetchLatency("projections", 42.0)
				}, ShouldNotPanic)
			})
		})

		Convey("When recording HTTP metrics", func() {
			Convey("Then it should record without panicking", func() {
				So(func() {
					RecordHTTPRequest("report", "GET", "200")
					RecordHTTPRequestDuration("report", "GET", "200", 3.5)
				}, ShouldNotPanic)
			})
		})
	})
}

func TestRegistry(t *testing.T) {
	Convey("Given the custom registry", t, func() {
		registry := GetRegistry()

		Convey("Then it gathers the advisor metric families", func() {
			So(registry, ShouldNotBeNil)

			RecordRun(10.0)
			families, err := registry.Gather()
			So(err, ShouldBeNil)

			names := make(map[string]bool, len(families))
			for _, f := range families {
				names[f.GetName()] = true
			}
			So(names["fastbreak_advisor_runs_total"], ShouldBeTrue)
			So(names["fastbreak_advisor_projection_rows"], ShouldBeTrue)
		})
	})
}
