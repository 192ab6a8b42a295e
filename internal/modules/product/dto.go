package product

type CreateProductRequest struct {
	Name       string `json:"name" validate:"required,min=2,max=200"`
	CategoryID int64  `json:"category_id"`
}
