package entity

import "time"

// LowStockAlert aviso generado cuando un producto cae por debajo de su stock mínimo.
type LowStockAlert struct {
	ID             string
	ProductID      string
	ProductName    string // solo lectura (join)
	QuantityAtSend int
	Threshold      int
	Acknowledged   bool
	AcknowledgedAt *time.Time
	AcknowledgedBy string
	SentAt         time.Time
}
