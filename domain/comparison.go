package domain

type StrategyResult struct {
	Strategy     Strategy `json:"strategy"`
	FirstPayment float64  `json:"first_payment"`
	LastPayment  float64  `json:"last_payment"`
	TotalPaid    float64  `json:"total_paid"`
	Overpayment  float64  `json:"overpayment"`
}

type ComparisonResult struct {
	Annuity        StrategyResult `json:"annuity"`
	Differentiated StrategyResult `json:"differentiated"`
	Cheaper        Strategy       `json:"cheaper"`
	Savings        float64        `json:"savings"`
}
