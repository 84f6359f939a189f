package model

import "time"

// CampaignReport is a generated performance snapshot for one campaign.
// ROI and ConversionRate are percentages.
type CampaignReport struct {
	ReportID       int       `json:"report_id"`
	CampaignID     int       `json:"campaign_id"`
	ROI            float64   `json:"roi"`
	Reach          int       `json:"reach"`
	ConversionRate float64   `json:"conversion_rate"`
	GeneratedDate  time.Time `json:"generated_date"`
}

// CampaignReportWithRegion is a report row joined with its campaign's store
// list, which doubles as the region list for the comparison endpoints.
type CampaignReportWithRegion struct {
	CampaignID     int     `json:"campaign_id"`
	ROI            float64 `json:"roi"`
	Reach          int     `json:"reach"`
	ConversionRate float64 `json:"conversion_rate"`
	Region         string  `json:"region"`
}

// CampaignStats are the aggregates report generation works from: total sale
// revenue, total allocated budget, engagement count and sale count for one
// campaign.
type CampaignStats struct {
	Revenue     float64
	Cost        float64
	Reach       int
	Conversions int
}

// RegionPerformance is one region's share of a report's figures, produced by
// splitting the campaign's store list and dividing the totals evenly.
type RegionPerformance struct {
	Region                string  `json:"region"`
	CampaignID            int     `json:"campaign_id"`
	TotalROI              float64 `json:"total_roi"`
	TotalReach            int     `json:"total_reach"`
	AverageConversionRate float64 `json:"average_conversion_rate"`
}

// RoiSummary pairs a campaign with its reported ROI.
type RoiSummary struct {
	CampaignID int     `json:"campaign_id"`
	ROI        float64 `json:"roi"`
}
