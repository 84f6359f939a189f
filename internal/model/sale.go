package model

import "time"

// Sale is one processed transaction attributed to a campaign.
type Sale struct {
	SaleID        int       `json:"sale_id"`
	CustomerID    int       `json:"customer_id"`
	ProductID     int       `json:"product_id"`
	CampaignID    int       `json:"campaign_id"`
	StoreID       int       `json:"store_id"`
	Quantity      int       `json:"quantity"`
	TotalAmount   float64   `json:"total_amount"`
	SaleDate      time.Time `json:"sale_date"`
	TransactionID string    `json:"transaction_id"`
	PaymentMethod string    `json:"payment_method"`
	PaymentStatus string    `json:"payment_status"`
	PaymentDate   time.Time `json:"payment_date"`
}
