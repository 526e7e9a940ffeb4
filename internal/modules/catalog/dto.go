package catalog

type CreateServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Category    string  `json:"category" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"gte=0"`
	ImageURL    string  `json:"image_url"`
}

type UpdateServiceRequest struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	ImageURL    string   `json:"image_url"`
}
