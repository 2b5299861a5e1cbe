package entity

// CostingMethod método de valoración de inventario de un producto.
type CostingMethod string

const (
	CostingFIFO                   CostingMethod = "FIFO"
	CostingLIFO                   CostingMethod = "LIFO"
	CostingWeightedAverage        CostingMethod = "WEIGHTED_AVERAGE"
	CostingSpecificIdentification CostingMethod = "SPECIFIC_IDENTIFICATION"
	CostingStandardCost           CostingMethod = "STANDARD_COST"
)

// DefaultCostingMethod método por defecto para productos nuevos.
const DefaultCostingMethod = CostingWeightedAverage

// IsValid verifica que el método pertenezca al enum cerrado.
func (m CostingMethod) IsValid() bool {
	switch m {
	case CostingFIFO, CostingLIFO, CostingWeightedAverage,
		CostingSpecificIdentification, CostingStandardCost:
		return true
	default:
		return false
	}
}

// UsesLayers indica si el método requiere capas de costo (FIFO/LIFO).
// Las capas son un punto de extensión: hoy los métodos no promedio
// toman el último costo de transacción al recibir compras.
func (m CostingMethod) UsesLayers() bool {
	return m == CostingFIFO || m == CostingLIFO
}

// costingMethodDisplay nombres para UI, separados de la lógica de dominio.
var costingMethodDisplay = map[CostingMethod]string{
	CostingFIFO:                   "Primeras en entrar, primeras en salir (FIFO)",
	CostingLIFO:                   "Últimas en entrar, primeras en salir (LIFO)",
	CostingWeightedAverage:        "Costo promedio ponderado",
	CostingSpecificIdentification: "Identificación específica",
	CostingStandardCost:           "Costo estándar",
}

// Display devuelve el nombre legible del método.
func (m CostingMethod) Display() string {
	if s, ok := costingMethodDisplay[m]; ok {
		return s
	}
	return string(m)
}
