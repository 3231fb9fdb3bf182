package request

type CreatePlanRequest struct {
	Slug        string  `json:"slug" validate:"required,min=2,max=60"`
	Name        string  `json:"name" validate:"required,max=120"`
	Description string  `json:"description" validate:"max=2000"`
	Price       float64 `json:"price" validate:"gt=0"`
	Currency    string  `json:"currency" validate:"required,iso4217"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

type UpdatePlanRequest struct {
	Slug        *string  `json:"slug,omitempty" validate:"omitempty,min=2,max=60"`
	Name        *string  `json:"name,omitempty" validate:"omitempty,max=120"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	Currency    *string  `json:"currency,omitempty" validate:"omitempty,iso4217"`
	IsActive    *bool    `json:"is_active,omitempty"`
}
