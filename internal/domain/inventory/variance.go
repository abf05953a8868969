package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
)

// Bandas de tolerancia por defecto (absolutas).
const DefaultQuantityTolerance = 5

// DefaultPriceTolerance 0.50 unidades monetarias.
var DefaultPriceTolerance = decimal.RequireFromString("0.50")

// Tolerance bandas absolutas: una variación se marca cuando |var| > banda.
type Tolerance struct {
	Quantity int
	Price    decimal.Decimal
}

// DefaultTolerance devuelve las bandas 5 unidades / 0.50.
func DefaultTolerance() Tolerance {
	return Tolerance{Quantity: DefaultQuantityTolerance, Price: DefaultPriceTolerance}
}

// ReportedLine cantidad y precio reportados para un artículo de la orden.
type ReportedLine struct {
	ItemID            string
	QuantityDelivered int
	PriceDelivered    decimal.Decimal
}

// EvaluateLine compara lo entregado contra lo esperado.
// LineTotal usa valores entregados, no esperados.
func EvaluateLine(expected entity.OrderLine, reported ReportedLine, tol Tolerance) entity.DeliveryLine {
	qVar := reported.QuantityDelivered - expected.ExpectedQuantity
	pVar := reported.PriceDelivered.Sub(expected.ExpectedUnitPrice)

	return entity.DeliveryLine{
		ItemID:            expected.ItemID,
		ItemName:          expected.ItemName,
		ExpectedQuantity:  expected.ExpectedQuantity,
		ExpectedUnitPrice: expected.ExpectedUnitPrice,
		QuantityDelivered: reported.QuantityDelivered,
		PriceDelivered:    reported.PriceDelivered,
		QuantityVariance:  qVar,
		PriceVariance:     pVar,
		LineTotal:         decimal.NewFromInt(int64(reported.QuantityDelivered)).Mul(reported.PriceDelivered),
		Flags: entity.VarianceFlags{
			QuantityOutOfTolerance: absInt(qVar) > tol.Quantity,
			PriceOutOfTolerance:    pVar.Abs().GreaterThan(tol.Price),
		},
	}
}

// SumLineTotals suma LineTotal de todas las líneas.
func SumLineTotals(lines []entity.DeliveryLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.LineTotal)
	}
	return total
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
