package repository

import "errors"

// ErrNoRowsReserved is returned when a conditional inventory update matched
// no row, meaning the event is missing, inactive, or out of tickets at the
// moment of commit. The service layer maps it to its own error taxonomy.
var ErrNoRowsReserved = errors.New("conditional inventory update affected no rows")
