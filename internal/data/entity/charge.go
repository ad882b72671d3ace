package entity

import "github.com/google/uuid"

// Charge is an immutable debit record against a manager, created 1:1 with a
// successful reservation in the same transaction. Charges survive
// cancellations and the administrative reset as an audit trail, so charge
// totals do not reconcile to current balances after a reset.
type Charge struct {
	BaseSimple
	ManagerID     uuid.UUID `db:"manager_id"`
	ReservationID uuid.UUID `db:"reservation_id"`
	Amount        float64   `db:"amount"`
}
