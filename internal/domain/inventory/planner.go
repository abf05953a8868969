// Package inventory contiene los servicios de dominio puros de reposición:
// planificación por nivel par, evaluación de variaciones de entrega y
// métricas de valorización. No accede a almacenamiento.
package inventory

import "github.com/jhoicas/Reposicion-api/internal/domain/entity"

// Filter dimensión de filtrado del catálogo. Vendor y Type son mutuamente
// excluyentes; si ambos vienen, Vendor tiene precedencia.
type Filter struct {
	Vendor string
	Type   string
}

// Normalize devuelve el filtro efectivo (Vendor gana sobre Type).
func (f Filter) Normalize() Filter {
	if f.Vendor != "" {
		return Filter{Vendor: f.Vendor}
	}
	return Filter{Type: f.Type}
}

// Match indica si el artículo pasa el filtro efectivo.
func (f Filter) Match(it entity.Item) bool {
	n := f.Normalize()
	switch {
	case n.Vendor != "":
		return it.Vendor == n.Vendor
	case n.Type != "":
		return it.Type == n.Type
	}
	return true
}

// Candidate línea propuesta para una orden, pendiente de aceptación del operador.
type Candidate struct {
	Line entity.OrderLine
	Item entity.Item // foto del artículo usada para proponer
}

// ProposedQuantity max(0, par − quantity_on_hand).
func ProposedQuantity(it entity.Item) int {
	if q := it.Par - it.QuantityOnHand; q > 0 {
		return q
	}
	return 0
}

// Plan calcula las líneas candidatas sobre una foto del catálogo.
// Nunca propone cantidades ≤ 0 y conserva el orden de iteración del catálogo.
func Plan(items []entity.Item, filter Filter) []Candidate {
	out := make([]Candidate, 0, len(items))
	for _, it := range items {
		if !filter.Match(it) {
			continue
		}
		qty := ProposedQuantity(it)
		if qty == 0 {
			continue
		}
		out = append(out, Candidate{
			Item: it,
			Line: entity.OrderLine{
				ItemID:            it.ID,
				ItemName:          it.Name,
				Vendor:            it.Vendor,
				ExpectedQuantity:  qty,
				ExpectedUnitPrice: it.UnitValue,
			},
		})
	}
	return out
}

// Accept aplica la decisión del operador por línea. Las líneas rechazadas
// o sin decisión se descartan sin error; se conserva el orden.
func Accept(candidates []Candidate, decisions map[string]bool) []entity.OrderLine {
	lines := make([]entity.OrderLine, 0, len(candidates))
	for _, c := range candidates {
		if decisions[c.Line.ItemID] {
			lines = append(lines, c.Line)
		}
	}
	return lines
}

// GroupByVendor agrupa líneas aceptadas por proveedor conservando el orden
// de primera aparición de cada proveedor.
func GroupByVendor(lines []entity.OrderLine) (vendors []string, byVendor map[string][]entity.OrderLine) {
	byVendor = make(map[string][]entity.OrderLine)
	for _, l := range lines {
		if _, ok := byVendor[l.Vendor]; !ok {
			vendors = append(vendors, l.Vendor)
		}
		byVendor[l.Vendor] = append(byVendor[l.Vendor], l)
	}
	return vendors, byVendor
}
