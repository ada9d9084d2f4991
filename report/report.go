// Package report renders calculation results as the lines printed by the
// command line tool.
package report

import (
	"fmt"
	"io"
	"strconv"

	"credit-calc/domain"
)

const monthsPerYear = 12

const IncorrectParameters = "Incorrect parameters."

// Lines returns the text report of result, one entry per output line.
func Lines(result domain.CalculationResult) []string {
	switch result.Mode {
	case domain.ModeSolveForPeriods:
		return []string{
			Duration(result.Periods),
			overpayment(result.Overpayment),
		}
	case domain.ModeSolveForPayment:
		return []string{
			"Your annuity payment = " + amount(result.MonthlyPayment) + "!",
			overpayment(result.Overpayment),
		}
	case domain.ModeSolveForPrincipal:
		return []string{
			"Your credit principal = " + amount(result.Principal) + "!",
			overpayment(result.Overpayment),
		}
	case domain.ModeDifferentiated:
		lines := make([]string, 0, len(result.Schedule)+1)
		for _, p := range result.Schedule {
			lines = append(lines, fmt.Sprintf("Month %d: paid out %s", p.Month, amount(p.Amount)))
		}
		return append(lines, overpayment(result.Overpayment))
	}
	return []string{IncorrectParameters}
}

// Write prints the report of result to w.
func Write(w io.Writer, result domain.CalculationResult) error {
	for _, line := range Lines(result) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// Duration renders a number of monthly periods as years and months.
//
// "year" stays singular for exactly 12 periods and for 13 to 23 periods.
// In the mixed form the month count is always written as "months".
func Duration(periods int) string {
	if periods < monthsPerYear {
		return fmt.Sprintf("It takes %d %s to repay the credit", periods, plural("month", periods > 1))
	}

	years := periods / monthsPerYear
	months := periods % monthsPerYear
	year := plural("year", !(periods == monthsPerYear || (periods > monthsPerYear && periods < 2*monthsPerYear)))

	if months == 0 {
		return fmt.Sprintf("It takes %d %s to repay the credit", years, year)
	}
	return fmt.Sprintf("It takes %d %s and %d %s to repay the credit",
		years, year, months, plural("month", periods > 1))
}

func plural(word string, many bool) string {
	if many {
		return word + "s"
	}
	return word
}

func overpayment(v float64) string {
	return "Overpayment = " + amount(v)
}

func amount(v float64) string {
	return strconv.FormatFloat(v, 'f', 0, 64)
}
