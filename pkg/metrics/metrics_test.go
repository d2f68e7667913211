package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options on a fresh registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithRegistry(registry))

			Convey("Then it should be created and enabled", func() {
				So(manager, ShouldNotBeNil)
				So(manager.Enabled(), ShouldBeTrue)
				So(manager.namespace, ShouldEqual, "roboscout")
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test_namespace"),
				WithSubsystem("test_subsystem"),
				WithLatencyBuckets([]float64{0.1, 0.5, 1.0}),
				WithProbabilityBuckets([]float64{0.25, 0.5, 0.75}),
				WithEnabled(false),
				WithConstLabels(map[string]string{"env": "test"}),
				WithRegistry(registry),
			)

			Convey("Then the options are applied", func() {
				So(manager.namespace, ShouldEqual, "test_namespace")
				So(manager.subsystem, ShouldEqual, "test_subsystem")
				So(manager.latencyBuckets, ShouldResemble, []float64{0.1, 0.5, 1.0})
				So(manager.probabilityBuckets, ShouldResemble, []float64{0.25, 0.5, 0.75})
				So(manager.Enabled(), ShouldBeFalse)
			})

			Convey("Then metric families carry the custom labels", func() {
				manager.eventsIngested.Inc()
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				So(families, ShouldNotBeEmpty)
				found := false
				for _, f := range families {
					if f.GetName() != "test_namespace_test_subsystem_events_ingested_total" {
						continue
					}
					found = true
					labels := f.GetMetric()[0].GetLabel()
					So(labels, ShouldHaveLength, 1)
					So(labels[0].GetName(), ShouldEqual, "env")
				}
				So(found, ShouldBeTrue)
			})
		})

		Convey("When empty options are passed", func() {
			manager := NewManager(
				WithNamespace(""),
				WithLatencyBuckets(nil),
				WithProbabilityBuckets(nil),
				WithRegistry(prometheus.NewRegistry()),
			)

			Convey("Then defaults are kept", func() {
				So(manager.namespace, ShouldEqual, "roboscout")
				So(manager.latencyBuckets, ShouldResemble, prometheus.DefBuckets)
				So(manager.probabilityBuckets, ShouldHaveLength, 11)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording catalog activity", func() {
			before := testutil.ToFloat64(globalManager.eventsIngested)
			RecordEventIngested()
			RecordObservation(false)
			RecordObservation(true)
			UpdateCatalogSize(3, 10, 2)

			Convey("Then counters and gauges move", func() {
				So(testutil.ToFloat64(globalManager.eventsIngested), ShouldEqual, before+1)
				So(testutil.ToFloat64(globalManager.eventsTotal), ShouldEqual, 3)
				So(testutil.ToFloat64(globalManager.observationsTotal), ShouldEqual, 10)
				So(testutil.ToFloat64(globalManager.inspectionsTotal), ShouldEqual, 2)
			})
		})

		Convey("When recording an analysis", func() {
			RecordAnalysis(12.5, 40, 8)

			Convey("Then the size gauges reflect the last run", func() {
				So(testutil.ToFloat64(globalManager.teamsAnalyzed), ShouldEqual, 40)
				So(testutil.ToFloat64(globalManager.advancedTeams), ShouldEqual, 8)
			})
		})

		Convey("When recording projections and simulations", func() {
			So(func() {
				RecordProjection()
				RecordSimulation(0.73)
				RecordFixtureLoadLatency(4)
				RecordCatalogQueryLatency(0.2)
			}, ShouldNotPanic)
		})

		Convey("When recording HTTP and error metrics", func() {
			So(func() {
				RecordHTTPRequest("analysis", "GET", "200")
				RecordHTTPRequestDuration("analysis", "GET", "200", 3.2)
				RecordErrorByComponent("service", "not_found")
				RecordErrorByType("validation", "warning")
				RecordErrorByEndpoint("simulate", "POST", "bad_request")
				RecordErrorLatency("service", "not_found", 1.1)
			}, ShouldNotPanic)
			So(testutil.CollectAndCount(globalManager.httpRequests), ShouldBeGreaterThan, 0)
		})

		Convey("When recording system metrics", func() {
			UpdateSystemGoroutineCount(17)
			UpdateSystemMemoryUsage(1024)
			RecordSystemGCPauseTime(0.3)

			Convey("Then gauges hold the values", func() {
				So(testutil.ToFloat64(globalManager.systemGoroutineCount), ShouldEqual, 17)
				So(testutil.ToFloat64(globalManager.systemMemoryUsage), ShouldEqual, 1024)
			})
		})

		Convey("When reading the registry", func() {
			So(GetRegistry(), ShouldNotBeNil)
		})
	})
}
