package http

import "net/http"

type Handlers struct {
	Loan       *LoanHandler
	Comparison *ComparisonHandler
	TermScan   *TermScanHandler
}

// NewRouter mounts every endpoint behind the rate limiter.
func NewRouter(h Handlers, limiter *RateLimiter) *http.ServeMux {
	mux := http.NewServeMux()
	routes := map[string]http.HandlerFunc{
		"/loan/calculate": h.Loan.CalculateLoan,
		"/loan/history":   h.Loan.History,
		"/loan/compare":   h.Comparison.Compare,
		"/loan/term-scan": h.TermScan.ScanTerms,
	}
	for pattern, handler := range routes {
		mux.Handle(pattern, RateLimitMiddleware(limiter, handler))
	}
	return mux
}
