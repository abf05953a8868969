package metrics_test

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Reposicion-api/internal/application/ports"
	"github.com/jhoicas/Reposicion-api/internal/infrastructure/metrics"
)

func TestPrometheus_Contadores(t *testing.T) {
	p := metrics.NewPrometheus()
	p.OrderCreated("Sysco")
	p.OrderCreated("Sysco")
	p.Reconciled(ports.ReconcileOK)
	p.Reconciled(ports.ReconcileMismatch)
	p.OutOfTolerance(ports.VarianceQuantity, 3)
	p.OutOfTolerance(ports.VariancePrice, 0)

	rec := httptest.NewRecorder()
	p.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	out := string(body)
	assert.Contains(t, out, `reposicion_orders_created_total{vendor="Sysco"} 2`)
	assert.Contains(t, out, `reposicion_reconciliations_total{result="mismatch"} 1`)
	assert.Contains(t, out, `reposicion_delivery_lines_out_of_tolerance_total{kind="quantity"} 3`)
	assert.NotContains(t, out, `kind="price"`)
}
