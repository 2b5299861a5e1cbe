package entity

// StockStatus estado derivado de las cantidades de un producto.
// Nunca se persiste: se calcula siempre desde on-hand y reservado
// para que no pueda divergir del ledger.
type StockStatus string

const (
	StockStatusInStock    StockStatus = "IN_STOCK"
	StockStatusLowStock   StockStatus = "LOW_STOCK"
	StockStatusOutOfStock StockStatus = "OUT_OF_STOCK"
)

var stockStatusDisplay = map[StockStatus]string{
	StockStatusInStock:    "En stock",
	StockStatusLowStock:   "Stock bajo",
	StockStatusOutOfStock: "Agotado",
}

// Display devuelve el nombre legible del estado.
func (s StockStatus) Display() string {
	if v, ok := stockStatusDisplay[s]; ok {
		return v
	}
	return string(s)
}
