// Package entity contains the core business objects of the project.
package entity

import "fmt"

// Money is a currency amount in integer minor units (e.g. centavos).
// Using integer arithmetic keeps line totals exact; float rounding drift is
// not acceptable for order totals.
type Money int64

// MinorUnitsPerMajor is the number of minor units in one currency unit.
const MinorUnitsPerMajor = 100

// MoneyFromMajor converts whole currency units into Money.
func MoneyFromMajor(units int64) Money {
	return Money(units * MinorUnitsPerMajor)
}

// Mul returns the amount multiplied by a non-negative quantity.
func (m Money) Mul(qty int) Money {
	return m * Money(qty)
}

// Major returns the amount truncated to whole currency units.
func (m Money) Major() int64 {
	return int64(m) / MinorUnitsPerMajor
}

// String formats the amount as a decimal currency string, e.g. "150.00".
func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}

	return fmt.Sprintf("%s%d.%02d", sign, v/MinorUnitsPerMajor, v%MinorUnitsPerMajor)
}
