package output

import "github.com/MichalMitros/pdsa-generator/internal/platform/models"

// Campaign import columns.
const (
	ColumnCampaign            = "Campaign"
	ColumnBudget              = "Budget"
	ColumnDSAWebsite          = "DSA Website"
	ColumnDSALanguage         = "DSA Language"
	ColumnDSATargetingSource  = "DSA targeting source"
	ColumnDSAPageFeeds        = "DSA page feeds"
	ColumnAdGroup             = "Ad Group"
	ColumnMaxCPM              = "Max CPM"
	ColumnTargetCPM           = "Target CPM"
	ColumnAdGroupType         = "Ad Group Type"
	ColumnTargetCondition     = "Dynamic Ad Target Condition 1"
	ColumnTargetValue         = "Dynamic Ad Target Value 1"
	ColumnAdType              = "Ad type"
	ColumnOriginalDescription = "Description Line 1#Original"
	ColumnDescription         = "Description Line 1"
	ColumnImage               = "Image"
)

// Columns are ordered campaign import columns.
var Columns = []string{
	ColumnCampaign,
	ColumnBudget,
	ColumnDSAWebsite,
	ColumnDSALanguage,
	ColumnDSATargetingSource,
	ColumnDSAPageFeeds,
	ColumnAdGroup,
	ColumnMaxCPM,
	ColumnTargetCPM,
	ColumnAdGroupType,
	ColumnTargetCondition,
	ColumnTargetValue,
	ColumnAdType,
	ColumnOriginalDescription,
	ColumnDescription,
	ColumnImage,
}

// Values returns row values in Columns order.
func Values(row models.Row) []string {
	return []string{
		row.Campaign,
		row.Budget,
		row.DSAWebsite,
		row.DSALanguage,
		row.DSATargetingSource,
		row.DSAPageFeeds,
		row.AdGroup,
		row.MaxCPM,
		row.TargetCPM,
		row.AdGroupType,
		row.TargetCondition,
		row.TargetValue,
		row.AdType,
		row.OriginalDescription,
		row.Description,
		row.Image,
	}
}

// CampaignTable returns campaign import table of rows.
func CampaignTable(rows []models.Row) *models.Table {
	table := &models.Table{Header: Columns, Rows: make([][]string, 0, len(rows))}
	for _, row := range rows {
		table.Rows = append(table.Rows, Values(row))
	}

	return table
}
