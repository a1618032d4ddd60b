package shared

import "fmt"

// Period identifies one maintenance-collection cycle as a (month, year) pair.
// It is a value object shared by the rotation and maintenance domains.
type Period struct {
	Month int
	Year  int
}

// NewPeriod creates a validated period
func NewPeriod(month, year int) (Period, error) {
	p := Period{Month: month, Year: year}
	if err := p.Validate(); err != nil {
		return Period{}, err
	}
	return p, nil
}

// Validate checks the period bounds
func (p Period) Validate() error {
	if p.Month < 1 || p.Month > 12 {
		return NewDomainError("INVALID_PERIOD", "Month must be between 1 and 12")
	}
	if p.Year < 2000 || p.Year > 2100 {
		return NewDomainError("INVALID_PERIOD", "Year is out of range")
	}
	return nil
}

// IsZero reports whether the period is unset
func (p Period) IsZero() bool {
	return p.Month == 0 && p.Year == 0
}

// String returns the period in MM/YYYY form
func (p Period) String() string {
	return fmt.Sprintf("%02d/%d", p.Month, p.Year)
}
