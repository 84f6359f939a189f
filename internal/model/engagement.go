package model

// Engagement records a customer's interaction with a campaign. The referenced
// campaign and customer must exist; that is validated by the service, not by
// the schema alone.
type Engagement struct {
	EngagementID    int     `json:"engagement_id"`
	CampaignID      int     `json:"campaign_id"`
	CustomerID      int     `json:"customer_id"`
	RedemptionCount int     `json:"redemption_count"`
	PurchaseValue   float64 `json:"purchase_value"`
}
