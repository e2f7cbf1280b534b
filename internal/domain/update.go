package domain

import (
	"time"

	"github.com/google/uuid"
)

// PriceUpdate is the only way a value enters the system after construction:
// a new price for one leaf. EventID ties together the log lines, persisted
// rows and stream messages produced while applying it.
type PriceUpdate struct {
	EventID uuid.UUID
	LeafID  string
	Price   float64
	Source  string
	Time    time.Time
}

func NewPriceUpdate(leafID string, price float64, source string) PriceUpdate {
	return PriceUpdate{
		EventID: uuid.New(),
		LeafID:  leafID,
		Price:   price,
		Source:  source,
		Time:    time.Now().UTC(),
	}
}
