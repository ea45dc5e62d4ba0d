package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When creating options", func() {
			namespaceOpt := WithNamespace("test-namespace")
			subsystemOpt := WithSubsystem("test-subsystem")
			histogramBucketsOpt := WithHistogramBuckets([]float64{0.1, 0.5, 1.0})
			metricsEnabledOpt := WithMetricsEnabled(true)
			refreshIntervalOpt := WithRefreshInterval(5 * time.Second)
			customLabelsOpt := WithCustomLabels(map[string]string{"env": "test"})

			Convey("Then they should be valid functions", func() {
				So(namespaceOpt, ShouldNotBeNil)
				So(subsystemOpt, ShouldNotBeNil)
				So(histogramBucketsOpt, ShouldNotBeNil)
				So(metricsEnabledOpt, ShouldNotBeNil)
				So(refreshIntervalOpt, ShouldNotBeNil)
				So(customLabelsOpt, ShouldNotBeNil)
			})
		})
	})
}

func TestManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test-namespace"),
				WithSubsystem("test-subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithMetricsEnabled(true),
				WithRefreshInterval(10*time.Second),
				WithCustomLabels(map[string]string{"env": "test", "version": "1.0"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given metrics recording", t, func() {
		Convey("When recording hand metrics", func() {
			Convey("Then it should record without panicking", func() {
				So(func() {
					RecordHandSubmitted()
					RecordHandDuplicate()
					RecordHandDropped()
					RecordEvaluation("Straight Flush")
					RecordEvaluationLatency(1.5)
					RecordShowcaseUpdate()
				}, ShouldNotPanic)
			})
		})

		Convey("When updating operational gauges", func() {
			Convey("Then it should update without panicking", func() {
				So(func() {
					UpdateQueueSize(10)
					UpdateWorkerCount(4)
					UpdateTotalHands(100)
					UpdateQueueCapacity(1000)
					UpdateQueueUtilization(0.01)
				}, ShouldNotPanic)
			})
		})

		Convey("When recording HTTP metrics", func() {
			Convey("Then it should record without panicking", func() {
				So(func() {
					RecordHTTPRequest("/hands", "POST", "202")
					RecordHTTPRequestDuration("/hands", "POST", "202", 2.0)
				}, ShouldNotPanic)
			})
		})

		Convey("When recording error metrics", func() {
			Convey("Then it should record without panicking", func() {
				So(func() {
					RecordEvaluationError()
					RecordShowcaseError()
					RecordErrorByComponent("worker", "evaluation_error")
					RecordErrorByType("validation_error", "warning")
					RecordErrorByEndpoint("/hands", "POST", "bad_request")
					RecordErrorLatency("worker", "evaluation_error", 0.3)
				}, ShouldNotPanic)
			})
		})

		Convey("When recording system metrics", func() {
			Convey("Then it should record without panicking", func() {
				So(func() {
					UpdateSystemMemoryUsage(1 << 20)
					UpdateSystemGoroutineCount(12)
					RecordSystemGCPauseTime(0.1)
				}, ShouldNotPanic)
			})
		})
	})
}

func TestGetRegistry(t *testing.T) {
	Convey("Given the global registry", t, func() {
		Convey("When fetching it", func() {
			registry := GetRegistry()

			Convey("Then it should not be nil", func() {
				So(registry, ShouldNotBeNil)
			})
		})
	})
}
