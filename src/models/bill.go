package models

import "time"

const (
	BillStatusPending = "pending"
	BillStatusPaid    = "paid"
	BillStatusOverdue = "overdue"
)

type Bill struct {
	ID             int64      `json:"id"`
	UserID         int64      `json:"user_id"`
	Name           string     `json:"name"`
	Amount         string     `json:"amount"`
	DueDate        time.Time  `json:"due_date"`
	Frequency      string     `json:"frequency"`
	Status         string     `json:"status"`
	Category       string     `json:"category"`
	LastRemindedAt *time.Time `json:"last_reminded_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type BillStats struct {
	TotalBills    int     `json:"totalBills"`
	PendingBills  int     `json:"pendingBills"`
	PaidBills     int     `json:"paidBills"`
	OverdueBills  int     `json:"overdueBills"`
	TotalAmount   float64 `json:"totalAmount"`
	PendingAmount float64 `json:"pendingAmount"`
	DueThisWeek   int     `json:"dueThisWeek"`
}
