package model

// Status is the state of an invoice as reported by the service in replies and
// notifications. It travels as a decimal string.
type Status string

const (
	// StatusNew newly created invoice.
	StatusNew Status = "0"
	// StatusPartiallyPaid customer partial payment received.
	StatusPartiallyPaid Status = "1"
	// StatusPaid customer payment received, not yet confirmed.
	StatusPaid Status = "2"
	// StatusConfirmed required number of block confirmations reached.
	StatusConfirmed Status = "3"
	// StatusComplete merchant paid out.
	StatusComplete Status = "4"
	// StatusInvalid unexpected error on the service side.
	StatusInvalid Status = "5"
	// StatusCancelled invoice was cancelled.
	StatusCancelled Status = "6"
)

func (s Status) String() string {
	switch s {
	case StatusNew:
		return "new"
	case StatusPartiallyPaid:
		return "partially-paid"
	case StatusPaid:
		return "paid"
	case StatusConfirmed:
		return "confirmed"
	case StatusComplete:
		return "complete"
	case StatusInvalid:
		return "invalid"
	case StatusCancelled:
		return "cancelled"
	}
	return "unknown(" + string(s) + ")"
}

// Valid reports whether s is one of the statuses known to this client.
func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusPartiallyPaid, StatusPaid, StatusConfirmed,
		StatusComplete, StatusInvalid, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further notifications are expected after s.
func (s Status) Terminal() bool {
	return s == StatusComplete || s == StatusInvalid || s == StatusCancelled
}
