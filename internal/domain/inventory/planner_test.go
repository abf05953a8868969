package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
	"github.com/jhoicas/Reposicion-api/internal/domain/inventory"
)

func item(id, vendor, typ string, onHand, par int, value string) entity.Item {
	return entity.Item{
		ID: id, Name: "Item " + id, Vendor: vendor, Type: typ,
		QuantityOnHand: onHand, Par: par, UnitValue: decimal.RequireFromString(value),
	}
}

func catalog() []entity.Item {
	return []entity.Item{
		item("a", "Sysco", "seco", 4, 10, "5"),
		item("b", "Sysco", "frio", 10, 10, "3"),  // en par
		item("c", "USFoods", "seco", 25, 20, "1"), // sobre par
		item("d", "USFoods", "frio", 0, 7, "2.25"),
	}
}

func TestPlan_NuncaProponeCantidadesNoPositivas(t *testing.T) {
	for _, c := range inventory.Plan(catalog(), inventory.Filter{}) {
		assert.Greater(t, c.Line.ExpectedQuantity, 0, "item %s", c.Line.ItemID)
	}
}

func TestPlan_ArticuloEnOSobreParNoGeneraLinea(t *testing.T) {
	candidates := inventory.Plan(catalog(), inventory.Filter{})

	ids := make([]string, 0, len(candidates))
	for _, c := range candidates {
		ids = append(ids, c.Line.ItemID)
	}
	assert.Equal(t, []string{"a", "d"}, ids, "conserva el orden del catálogo y omite b y c")
}

func TestPlan_FotoDeLinea(t *testing.T) {
	candidates := inventory.Plan(catalog(), inventory.Filter{})
	require.Len(t, candidates, 2)

	line := candidates[1].Line
	assert.Equal(t, "d", line.ItemID)
	assert.Equal(t, "Item d", line.ItemName)
	assert.Equal(t, "USFoods", line.Vendor)
	assert.Equal(t, 7, line.ExpectedQuantity)
	assert.True(t, decimal.RequireFromString("2.25").Equal(line.ExpectedUnitPrice))
}

func TestPlan_FiltroProveedorTienePrecedencia(t *testing.T) {
	candidates := inventory.Plan(catalog(), inventory.Filter{Vendor: "Sysco", Type: "frio"})
	require.Len(t, candidates, 1)
	assert.Equal(t, "a", candidates[0].Line.ItemID)
}

func TestPlan_FiltroTipo(t *testing.T) {
	candidates := inventory.Plan(catalog(), inventory.Filter{Type: "frio"})
	require.Len(t, candidates, 1)
	assert.Equal(t, "d", candidates[0].Line.ItemID)
}

func TestPlan_CatalogoVacio(t *testing.T) {
	assert.Empty(t, inventory.Plan(nil, inventory.Filter{}))
}

func TestAccept_DescartaRechazadasYSinDecision(t *testing.T) {
	items := []entity.Item{
		item("a", "Sysco", "seco", 0, 3, "1"),
		item("b", "Sysco", "seco", 0, 3, "1"),
		item("c", "Sysco", "seco", 0, 3, "1"),
	}
	candidates := inventory.Plan(items, inventory.Filter{})

	lines := inventory.Accept(candidates, map[string]bool{"a": true, "b": false})
	require.Len(t, lines, 1)
	assert.Equal(t, "a", lines[0].ItemID)

	assert.Empty(t, inventory.Accept(candidates, nil))
}

func TestGroupByVendor_OrdenDePrimeraAparicion(t *testing.T) {
	lines := []entity.OrderLine{
		{ItemID: "1", Vendor: "B"},
		{ItemID: "2", Vendor: "A"},
		{ItemID: "3", Vendor: "B"},
	}
	vendors, byVendor := inventory.GroupByVendor(lines)

	assert.Equal(t, []string{"B", "A"}, vendors)
	assert.Len(t, byVendor["B"], 2)
	assert.Len(t, byVendor["A"], 1)
}
