// Package metrics expone contadores operativos en formato Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/Reposicion-api/internal/application/ports"
)

const namespace = "reposicion"

var _ ports.Metrics = (*Prometheus)(nil)

// Prometheus adaptador de ports.Metrics con registro propio.
type Prometheus struct {
	registry        *prometheus.Registry
	ordersCreated   *prometheus.CounterVec
	reconciliations *prometheus.CounterVec
	outOfTolerance  *prometheus.CounterVec
}

// NewPrometheus registra los contadores y los colectores de proceso y runtime.
func NewPrometheus() *Prometheus {
	reg := prometheus.NewRegistry()
	p := &Prometheus{
		registry: reg,
		ordersCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_created_total",
			Help:      "Órdenes de compra creadas por proveedor.",
		}, []string{"vendor"}),
		reconciliations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reconciliations_total",
			Help:      "Conciliaciones de entrega por resultado.",
		}, []string{"result"}),
		outOfTolerance: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "delivery_lines_out_of_tolerance_total",
			Help:      "Líneas entregadas fuera de tolerancia por tipo de variación.",
		}, []string{"kind"}),
	}
	reg.MustRegister(
		p.ordersCreated,
		p.reconciliations,
		p.outOfTolerance,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return p
}

func (p *Prometheus) OrderCreated(vendor string) {
	p.ordersCreated.WithLabelValues(vendor).Inc()
}

func (p *Prometheus) Reconciled(result string) {
	p.reconciliations.WithLabelValues(result).Inc()
}

func (p *Prometheus) OutOfTolerance(kind string, lines int) {
	if lines <= 0 {
		return
	}
	p.outOfTolerance.WithLabelValues(kind).Add(float64(lines))
}

// Handler expone el registro en formato de texto de Prometheus.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{Registry: p.registry})
}
