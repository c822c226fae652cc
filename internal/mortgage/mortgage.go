// Package mortgage implements the loan math behind the in-app calculators.
// All money values are cents to keep the arithmetic exact at the API edge;
// the amortization itself runs in float64 and rounds once per figure.
package mortgage

import (
	"errors"
	"math"
)

var ErrInvalidInput = errors.New("mortgage: invalid input")

type LoanParams struct {
	Principal  int64   // cents
	AnnualRate float64 // e.g. 6.5 for 6.5%
	TermYears  int
}

// MonthlyPayment returns the fixed payment in cents using the standard
// annuity formula. A zero rate degenerates to straight division.
func MonthlyPayment(p LoanParams) (int64, error) {
	if p.Principal <= 0 || p.TermYears <= 0 || p.AnnualRate < 0 {
		return 0, ErrInvalidInput
	}

	n := float64(p.TermYears * 12)
	principal := float64(p.Principal)

	if p.AnnualRate == 0 {
		return int64(math.Round(principal / n)), nil
	}

	r := p.AnnualRate / 100 / 12
	payment := principal * r * math.Pow(1+r, n) / (math.Pow(1+r, n) - 1)

	return int64(math.Round(payment)), nil
}

// Installment is one row of an amortization schedule, all in cents.
type Installment struct {
	Month     int
	Payment   int64
	Principal int64
	Interest  int64
	Balance   int64
}

// Schedule amortizes the loan month by month. The final payment absorbs the
// rounding drift so the balance lands on exactly zero.
func Schedule(p LoanParams) ([]Installment, error) {
	payment, err := MonthlyPayment(p)
	if err != nil {
		return nil, err
	}

	r := p.AnnualRate / 100 / 12
	months := p.TermYears * 12
	balance := p.Principal

	schedule := make([]Installment, 0, months)

	for month := 1; month <= months; month++ {
		interest := int64(math.Round(float64(balance) * r))
		principal := payment - interest

		if month == months || principal >= balance {
			principal = balance
			payment = principal + interest
		}

		balance -= principal

		schedule = append(schedule, Installment{
			Month:     month,
			Payment:   payment,
			Principal: principal,
			Interest:  interest,
			Balance:   balance,
		})

		if balance == 0 {
			break
		}
	}

	return schedule, nil
}

// TotalInterest sums the interest column of the full schedule.
func TotalInterest(p LoanParams) (int64, error) {
	schedule, err := Schedule(p)
	if err != nil {
		return 0, err
	}

	var total int64
	for _, row := range schedule {
		total += row.Interest
	}

	return total, nil
}

type RefinanceParams struct {
	CurrentPayment int64 // cents per month
	NewLoan        LoanParams
	ClosingCosts   int64 // cents
}

// RefinanceResult compares the current loan against a candidate refinance.
// BreakEvenMonths is how long the monthly savings take to repay the closing
// costs; -1 when the new payment saves nothing.
type RefinanceResult struct {
	NewPayment      int64
	MonthlySavings  int64
	BreakEvenMonths int
}

func Refinance(p RefinanceParams) (*RefinanceResult, error) {
	if p.CurrentPayment <= 0 || p.ClosingCosts < 0 {
		return nil, ErrInvalidInput
	}

	newPayment, err := MonthlyPayment(p.NewLoan)
	if err != nil {
		return nil, err
	}

	result := &RefinanceResult{
		NewPayment:      newPayment,
		MonthlySavings:  p.CurrentPayment - newPayment,
		BreakEvenMonths: -1,
	}

	if result.MonthlySavings > 0 {
		result.BreakEvenMonths = int(math.Ceil(float64(p.ClosingCosts) / float64(result.MonthlySavings)))
	}

	return result, nil
}
