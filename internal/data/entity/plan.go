package entity

// Plan is a purchasable dummy-ticket product (flight reservation, hotel booking, ...).
type Plan struct {
	BaseNoDelete
	Slug        string  `db:"slug"`
	Name        string  `db:"name"`
	Description string  `db:"description"`
	Price       float64 `db:"price"`
	Currency    string  `db:"currency"`
	IsActive    bool    `db:"is_active"`
}
