package transport

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// Validate checks the struct tags of a bound request body.
func Validate(req any) error {
	return validate.Struct(req)
}

type ProductRequest struct {
	Name  string  `json:"name"  validate:"required"`
	Price float64 `json:"price" validate:"gte=0"`
	Stock int     `json:"stock" validate:"gte=0"`
}

type TableRequest struct {
	Name      string `json:"name"       validate:"required"`
	Capacity  int    `json:"capacity"   validate:"gte=1"`
	SingleTab bool   `json:"single_tab"`
}

type OrderItemRequest struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity"   validate:"gte=1"`
}

type OrderRequest struct {
	TableID uint               `json:"table_id" validate:"required"`
	Items   []OrderItemRequest `json:"items"    validate:"required,min=1,dive"`
	Date    string             `json:"date"     validate:"omitempty,datetime=2006-01-02"`
}
