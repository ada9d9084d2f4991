package domain

type TermScanInput struct {
	Principal         float64 `json:"principal"`
	Interest          float64 `json:"interest"`
	MinPeriods        int     `json:"min_periods"`
	MaxPeriods        int     `json:"max_periods"`
	MaxMonthlyPayment float64 `json:"max_monthly_payment"`
}

type TermOption struct {
	Periods        int     `json:"periods"`
	MonthlyPayment float64 `json:"monthly_payment"`
	Overpayment    float64 `json:"overpayment"`
}

type TermScanResult struct {
	RecommendedPeriods int          `json:"recommended_periods"`
	Options            []TermOption `json:"options"`
}
