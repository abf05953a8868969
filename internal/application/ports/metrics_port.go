package ports

// Resultados de conciliación reportados a métricas.
const (
	ReconcileOK         = "ok"
	ReconcileValidation = "validation"
	ReconcileNotFound   = "not_found"
	ReconcileClosed     = "invalid_state"
	ReconcileMismatch   = "mismatch"
	ReconcileError      = "error"
)

// Tipos de variación fuera de tolerancia.
const (
	VarianceQuantity = "quantity"
	VariancePrice    = "price"
)

// Metrics puerto de salida para contadores operativos.
// Un adaptador Prometheus lo implementa en infraestructura; NopMetrics en tests.
type Metrics interface {
	OrderCreated(vendor string)
	Reconciled(result string)
	OutOfTolerance(kind string, lines int)
}

// NopMetrics descarta todas las observaciones.
type NopMetrics struct{}

func (NopMetrics) OrderCreated(string)        {}
func (NopMetrics) Reconciled(string)          {}
func (NopMetrics) OutOfTolerance(string, int) {}
