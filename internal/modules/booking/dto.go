package booking

type CreateBookingRequest struct {
	ServiceID int64   `json:"service_id" binding:"required"`
	Date      string  `json:"date" binding:"required"`
	Price     float64 `json:"price" binding:"gte=0"`
}
