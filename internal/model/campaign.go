package model

import "time"

// Campaign is a planned marketing campaign. TargetProducts and StoreList are
// comma-separated lists, kept as raw text the same way the dashboard submits
// them; ScheduleCampaign merges into StoreList without reordering existing
// entries.
type Campaign struct {
	CampaignID     int       `json:"campaign_id"`
	Name           string    `json:"name"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	TargetProducts string    `json:"target_products"`
	StoreList      string    `json:"store_list"`
}
