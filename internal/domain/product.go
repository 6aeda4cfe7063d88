package domain

// Rating holds the aggregate review score for a product.
type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// Product represents a catalog item as served by the upstream directory service.
// The ID is assigned by the service and immutable after creation.
type Product struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Rating      Rating  `json:"rating"`
}

// ProductDraft is a candidate product submitted for creation. The upstream
// service assigns the ID and a zero rating.
type ProductDraft struct {
	Title       string  `json:"title" validate:"required,min=3"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Description string  `json:"description" validate:"required,min=10"`
	Category    string  `json:"category" validate:"required,category"`
	Image       string  `json:"image" validate:"required,url"`
}

// ProductPatch is a partial update for an existing product. Nil fields are
// left unchanged; the upstream service returns the merged canonical record.
type ProductPatch struct {
	Title       *string  `json:"title,omitempty" validate:"omitempty,min=3"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	Description *string  `json:"description,omitempty" validate:"omitempty,min=10"`
	Category    *string  `json:"category,omitempty" validate:"omitempty,category"`
	Image       *string  `json:"image,omitempty" validate:"omitempty,url"`
}

// Categories is the fixed category set used by the directory service.
var Categories = []string{"electronics", "jewelery", "men's clothing", "women's clothing"}

// ValidCategory reports whether c is one of the known categories.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}
