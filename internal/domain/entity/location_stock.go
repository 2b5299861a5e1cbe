package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LocationStock stock actual de un producto en una ubicación física
// (bodega, camión, obra). La suma por producto debe igualar su on-hand;
// los traslados mueven cantidad entre ubicaciones sin alterar el total.
type LocationStock struct {
	ProductID  string
	LocationID string
	Quantity   decimal.Decimal
	UpdatedAt  time.Time
}
