package service

const (
	MaxTermMonths      = 600 // 50 years
	MaxTermRangeMonths = 120 // widest range a term scan evaluates

	// longest differentiated schedule the engine will build
	MaxScheduleMonths = 1_200_000

	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 500
)
