package model

// Budget allocates spend to one campaign at one store. SpentAmount may never
// exceed AllocatedAmount; the budget service rejects both creates and updates
// that would violate that.
type Budget struct {
	BudgetID        int     `json:"budget_id"`
	CampaignID      int     `json:"campaign_id"`
	StoreID         int     `json:"store_id"`
	AllocatedAmount float64 `json:"allocated_amount"`
	SpentAmount     float64 `json:"spent_amount"`
}
