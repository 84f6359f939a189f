package model

// Customer is a shopper tracked for engagements and sales.
type Customer struct {
	CustomerID int    `json:"customer_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
}
