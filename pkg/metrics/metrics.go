// Package metrics 提供 Prometheus helper，包含 HTTP 与商城业务指标
package metrics

import (
	"context"
	"fmt"
	"net/http"

	pkglogger "github.com/prostore/storefront/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics 指标集合
type Metrics struct {
	// HTTP 请求计数
	HTTPRequestsTotal *prometheus.CounterVec
	// HTTP 请求耗时
	HTTPRequestDuration prometheus.Histogram

	// 购物车加购计数
	CartItemsAddedTotal prometheus.Counter
	// 购物车移除计数
	CartItemsRemovedTotal prometheus.Counter
	// 订单创建计数
	OrdersCreatedTotal prometheus.Counter
	// 订单支付计数
	OrdersPaidTotal prometheus.Counter
	// 订单送达计数
	OrdersDeliveredTotal prometheus.Counter
	// 支付校验失败计数
	PaymentFailuresTotal prometheus.Counter
}

// New 创建指标实例
func New(serviceName string) *Metrics {
	return &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: serviceName,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "storefront",
			Subsystem: serviceName,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		CartItemsAddedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: serviceName,
			Name:      "cart_items_added_total",
			Help:      "Total cart item additions",
		}),
		CartItemsRemovedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: serviceName,
			Name:      "cart_items_removed_total",
			Help:      "Total cart item removals",
		}),
		OrdersCreatedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: serviceName,
			Name:      "orders_created_total",
			Help:      "Total orders created",
		}),
		OrdersPaidTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: serviceName,
			Name:      "orders_paid_total",
			Help:      "Total orders marked as paid",
		}),
		OrdersDeliveredTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: serviceName,
			Name:      "orders_delivered_total",
			Help:      "Total orders marked as delivered",
		}),
		PaymentFailuresTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: serviceName,
			Name:      "payment_failures_total",
			Help:      "Total payment verification failures",
		}),
	}
}

// Register 注册所有指标到默认 Registry
func (m *Metrics) Register() error {
	collectors := []prometheus.Collector{
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.CartItemsAddedTotal,
		m.CartItemsRemovedTotal,
		m.OrdersCreatedTotal,
		m.OrdersPaidTotal,
		m.OrdersDeliveredTotal,
		m.PaymentFailuresTotal,
	}
	for _, c := range collectors {
		if err := prometheus.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// StartHTTPServer 启动独立的指标 HTTP 服务
func StartHTTPServer(port int, path string) error {
	mux := http.NewServeMux()
	mux.Handle(path, promhttp.Handler())

	addr := fmt.Sprintf(":%d", port)
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			pkglogger.Error(context.Background(), "Metrics HTTP server error", "error", err)
		}
	}()

	pkglogger.Info(context.Background(), "Metrics HTTP server started", "addr", addr, "path", path)
	return nil
}
