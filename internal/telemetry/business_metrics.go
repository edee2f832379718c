// Package telemetry provides Prometheus business metrics and Sentry error
// tracking.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

// BusinessMetrics holds Prometheus metrics for business-level observability.
type BusinessMetrics struct {
	// Cart
	CartItemsAdded   prometheus.Counter
	CartItemsUpdated prometheus.Counter
	CartItemsRemoved prometheus.Counter
	CartLineValue    prometheus.Histogram

	// Catalog
	CategoryListViews prometheus.Counter
	ProductListViews  prometheus.Counter

	// Accounts
	Signups      prometheus.Counter
	Logins       prometheus.Counter
	LoginsFailed prometheus.Counter

	// Email delivery
	EmailSent   prometheus.Counter
	EmailFailed prometheus.Counter
}

// Business is the process-wide metrics instance. Nil until InitBusinessMetrics
// runs; the Record helpers tolerate that so tests need no setup.
var Business *BusinessMetrics

// InitBusinessMetrics creates and registers all business metrics.
func InitBusinessMetrics(namespace string) *BusinessMetrics {
	if namespace == "" {
		namespace = "foodstore"
	}

	subsystem := "business"

	Business = &BusinessMetrics{
		CartItemsAdded: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "cart_items_added_total",
			Help:      "Total cart line items created",
		}),
		CartItemsUpdated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "cart_items_updated_total",
			Help:      "Total cart line item count changes",
		}),
		CartItemsRemoved: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "cart_items_removed_total",
			Help:      "Total cart line items removed, including those zeroed by updates",
		}),
		CartLineValue: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "cart_line_value",
			Help:      "Line price of added cart items",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500},
		}),
		CategoryListViews: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "category_list_views_total",
			Help:      "Total category listing requests",
		}),
		ProductListViews: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "product_list_views_total",
			Help:      "Total product listing requests",
		}),
		Signups: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "signups_total",
			Help:      "Total accounts created",
		}),
		Logins: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "logins_total",
			Help:      "Total successful logins",
		}),
		LoginsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "logins_failed_total",
			Help:      "Total failed login attempts",
		}),
		EmailSent: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "email_sent_total",
			Help:      "Total emails delivered",
		}),
		EmailFailed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "email_failed_total",
			Help:      "Total email delivery failures",
		}),
	}

	return Business
}

// RecordCartItemAdded records a created line item and its value.
func RecordCartItemAdded(price decimal.Decimal) {
	if Business == nil {
		return
	}
	Business.CartItemsAdded.Inc()
	value, _ := price.Float64()
	Business.CartLineValue.Observe(value)
}

// RecordCartItemUpdated records a count change on a line item.
func RecordCartItemUpdated() {
	if Business == nil {
		return
	}
	Business.CartItemsUpdated.Inc()
}

// RecordCartItemRemoved records a removed line item.
func RecordCartItemRemoved() {
	if Business == nil {
		return
	}
	Business.CartItemsRemoved.Inc()
}

// RecordCategoryListView records a category listing request.
func RecordCategoryListView() {
	if Business == nil {
		return
	}
	Business.CategoryListViews.Inc()
}

// RecordProductListView records a product listing request.
func RecordProductListView() {
	if Business == nil {
		return
	}
	Business.ProductListViews.Inc()
}

// RecordSignup records an account creation.
func RecordSignup() {
	if Business == nil {
		return
	}
	Business.Signups.Inc()
}

// RecordLogin records a login attempt outcome.
func RecordLogin(success bool) {
	if Business == nil {
		return
	}
	if success {
		Business.Logins.Inc()
	} else {
		Business.LoginsFailed.Inc()
	}
}

// RecordEmail records an email delivery outcome.
func RecordEmail(success bool) {
	if Business == nil {
		return
	}
	if success {
		Business.EmailSent.Inc()
	} else {
		Business.EmailFailed.Inc()
	}
}
