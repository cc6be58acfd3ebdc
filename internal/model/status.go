package model

// Status is the urgency classification of a bill relative to a reference day.
type Status string

const (
	StatusPaid    Status = "paid"
	StatusOverdue Status = "overdue"
	StatusDueSoon Status = "due-soon"
	StatusOK      Status = "ok"
)

// DueSoonWindowDays is the inclusive upper bound for the due-soon window.
const DueSoonWindowDays = 7
