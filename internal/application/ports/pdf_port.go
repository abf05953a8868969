package ports

import "github.com/jhoicas/Reposicion-api/internal/domain/entity"

// OrderPDFGenerator define el puerto para generar la orden de compra en PDF.
type OrderPDFGenerator interface {
	GenerateOrderPDF(order *entity.Order) ([]byte, error)
}
