package entity

// Manager is the billable account charged per reservation, keyed by name and
// shared by every user reporting to it. Balance only moves through charge
// debits and the administrative reset.
type Manager struct {
	Base
	ManagerName string  `db:"manager_name"`
	Balance     float64 `db:"balance"`
}
