package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"member-api/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			manager := NewManager()

			Convey("Then it should own a registry", func() {
				So(manager, ShouldNotBeNil)
				So(manager.Registry(), ShouldNotBeNil)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithRegistry(registry),
			)

			Convey("Then it should use the given registry", func() {
				So(manager.Registry(), ShouldEqual, registry)
			})
		})
	})
}

func TestRecording(t *testing.T) {
	Convey("Given a metrics manager", t, func() {
		manager := NewManager(WithRegistry(prometheus.NewRegistry()))

		Convey("When recording a reconciliation summary", func() {
			manager.RecordReconcile("develop.items", reconcile.Summary{Deleted: 1, Updated: 2, Inserted: 3})
			manager.RecordReconcile("develop.items", reconcile.Summary{Inserted: 1})

			Convey("Then each action is counted per collection", func() {
				So(testutil.ToFloat64(manager.reconcileActions.WithLabelValues("develop.items", "delete")), ShouldEqual, 1)
				So(testutil.ToFloat64(manager.reconcileActions.WithLabelValues("develop.items", "update")), ShouldEqual, 2)
				So(testutil.ToFloat64(manager.reconcileActions.WithLabelValues("develop.items", "insert")), ShouldEqual, 4)
			})
		})

		Convey("When recording a failure", func() {
			manager.RecordReconcileFailure("update_member_stats")

			Convey("Then the failure counter increases", func() {
				So(testutil.ToFloat64(manager.reconcileFailures.WithLabelValues("update_member_stats")), ShouldEqual, 1)
			})
		})

		Convey("When recording HTTP requests", func() {
			manager.RecordHTTPRequest("/members/:handle/stats", "GET", 200, 5*time.Millisecond)

			Convey("Then the request counter increases", func() {
				So(testutil.ToFloat64(manager.httpRequests.WithLabelValues("/members/:handle/stats", "GET", "200")), ShouldEqual, 1)
			})
		})
	})

	Convey("Given a nil manager", t, func() {
		var manager *Manager

		Convey("Then recording does not panic", func() {
			So(func() {
				manager.RecordHTTPRequest("/", "GET", 200, time.Millisecond)
				manager.RecordReconcile("design.items", reconcile.Summary{Updated: 1})
				manager.RecordReconcileFailure("create_history_stats")
			}, ShouldNotPanic)
		})
	})
}

func TestMiddlewareAndHandler(t *testing.T) {
	Convey("Given an app with metrics middleware", t, func() {
		manager := NewManager(WithRegistry(prometheus.NewRegistry()))
		app := fiber.New()
		app.Use(manager.Middleware())
		app.Get("/metrics", manager.Handler())
		app.Get("/members/:handle", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

		Convey("When a request is served", func() {
			_, err := app.Test(httptest.NewRequest("GET", "/members/tonyj", nil))
			So(err, ShouldBeNil)

			Convey("Then it is counted by route template", func() {
				So(testutil.ToFloat64(manager.httpRequests.WithLabelValues("/members/:handle", "GET", "204")), ShouldEqual, 1)
			})

			Convey("And the scrape endpoint exposes it", func() {
				resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
				So(err, ShouldBeNil)
				body, _ := io.ReadAll(resp.Body)
				So(string(body), ShouldContainSubstring, "member_api_http_requests_total")
			})
		})
	})
}
