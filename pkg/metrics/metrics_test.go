package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a private registry and namespace", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithPrometheusRegistry(registry),
			)
			manager.linesParsed.Inc()

			Convey("Then collectors carry the namespace", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "test")
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				// Vec collectors only appear once a label set is used.
				So(len(families), ShouldBeGreaterThanOrEqualTo, 5)
				names := map[string]bool{}
				for _, f := range families {
					names[f.GetName()] = true
				}
				So(names["test_extract_lines_total"], ShouldBeTrue)
			})
		})

		Convey("When an option carries an empty value", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithNamespace(""), WithPrometheusRegistry(registry))

			Convey("Then the default is kept", func() {
				So(manager.namespace, ShouldEqual, DefaultNamespace)
			})
		})
	})
}

func TestMetricsInit(t *testing.T) {
	Convey("Given Init with a custom namespace", t, func() {
		before := GetRegistry()
		Init(WithNamespace("ratings"))
		defer Init()

		RecordQuery("lookup", "ok")

		Convey("Then a fresh registry exposes the renamed metrics", func() {
			So(GetRegistry() != before, ShouldBeTrue)
			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)
			found := false
			for _, f := range families {
				if f.GetName() == "ratings_queries_total" {
					found = true
				}
			}
			So(found, ShouldBeTrue)
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When recording extractor metrics", func() {
			before := testutil.ToFloat64(globalManager.linesParsed)
			skipped := testutil.ToFloat64(globalManager.linesSkipped.WithLabelValues("no_slug"))
			RecordLinesParsed(100000)
			RecordLinesSkipped("no_slug", 7)
			UpdateRecordsExtracted(42)

			Convey("Then each batch moves its counter in one step", func() {
				So(testutil.ToFloat64(globalManager.linesParsed), ShouldEqual, before+100000)
				So(testutil.ToFloat64(globalManager.recordsExtracted), ShouldEqual, 42)
				So(testutil.ToFloat64(globalManager.linesSkipped.WithLabelValues("no_slug")), ShouldEqual, skipped+7)
			})
		})

		Convey("When a batch is empty or negative", func() {
			before := testutil.ToFloat64(globalManager.linesParsed)

			Convey("Then nothing is recorded and nothing panics", func() {
				So(func() {
					RecordLinesParsed(0)
					RecordLinesParsed(-3)
					RecordLinesSkipped("blank", 0)
				}, ShouldNotPanic)
				So(testutil.ToFloat64(globalManager.linesParsed), ShouldEqual, before)
			})
		})

		Convey("When recording query and protocol metrics", func() {
			So(func() {
				RecordQuery("suggest", "ok")
				RecordBridgesReturned(3)
				RecordProtocolCommand("lookup")
				RecordSnapshotLoad(1.5)
				RecordSnapshotSave(2.5)
				RecordSnapshotError("missing")
				RecordHTTPRequest("suggest", "GET", "200")
				RecordHTTPRequestDuration("suggest", "GET", "200", 3)
				RecordHTTPError("lookup", "GET", "not_found")
			}, ShouldNotPanic)
			So(testutil.ToFloat64(globalManager.queries.WithLabelValues("suggest", "ok")), ShouldBeGreaterThanOrEqualTo, 1)
			So(testutil.ToFloat64(globalManager.httpErrors.WithLabelValues("lookup", "GET", "not_found")), ShouldBeGreaterThanOrEqualTo, 1)
		})

		Convey("Then the exported registry is the custom one", func() {
			So(GetRegistry(), ShouldEqual, customRegistry)
		})
	})
}
