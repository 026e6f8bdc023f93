package domain

import "time"

type Client struct {
	ID          string
	Name        string
	ContactName string
	Email       string
	Phone       string
	ArchivedAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
