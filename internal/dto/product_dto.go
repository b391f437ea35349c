package dto

// ProductDTO is the JSON shape of a product crossing the HTTP boundary.
// ID is read-only and ignored on create.
type ProductDTO struct {
	ID          uint     `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Country     string   `json:"country"`
	Price       *float64 `json:"price"`
	Quantity    *int     `json:"quantity"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}
