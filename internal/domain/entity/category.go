package entity

import "time"

// Category representa una categoría de productos (analgésicos, antibióticos, etc.).
type Category struct {
	ID          string
	Name        string
	Description string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
