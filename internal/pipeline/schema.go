package pipeline

// Warehouse column names for the dashboard_data table. The table is a wide
// denormalized export; each view reads its own subset of columns from the
// same row shape, so every column name lives here and nowhere else.
const (
	ColTradeDate      = "NSDR_TR_DATE"
	ColPositiveAmount = "NSDR_POSITIVE_AMOUNT"
	ColNegativeAmount = "NSDR_NEGATIVE_AMOUNT"
	ColBranchCode     = "NSDR_BRANCH_CODE"
	ColRMName         = "NSDR_RM_NAME"

	ColAUMRMName = "RMWAUM_RM_NAME"
	ColAUMAmount = "RMWAUM_AUM"

	ColClientCode   = "TCCN_CLIENT_CODE"
	ColClientAmount = "TCCN_AMOUNT"
)

// FieldMap names which warehouse columns map to the date, amount and
// category fields for the view being built.
type FieldMap struct {
	Date     string
	Positive string
	Negative string
	Category string // optional; empty means the view has no category field
}

// NetSalesFields maps the net-sales view onto the warehouse schema. The
// category field carries the branch code used for filtering.
var NetSalesFields = FieldMap{
	Date:     ColTradeDate,
	Positive: ColPositiveAmount,
	Negative: ColNegativeAmount,
	Category: ColBranchCode,
}
