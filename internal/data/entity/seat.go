package entity

type Seat struct {
	BaseSimple
	Label      string `db:"label"`       // A1, A2, ..., J10
	RowLabel   string `db:"row_label"`   // A, B, ..., J
	SeatNumber int    `db:"seat_number"` // 1..10
}
