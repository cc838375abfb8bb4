package domain

import (
	"math"

	"github.com/google/uuid"
)

type ID string

// NewID returns a UUIDv7, so ids are distinguishable by creation time.
func NewID() ID {
	return ID(uuid.Must(uuid.NewV7()).String())
}

func ValidateID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Amount is a monetary value in cents.
type Amount int64

func NewAmountFromCents(cents int64) Amount {
	return Amount(cents)
}

// NewAmountFromFloat converts a decimal value (e.g. 99.99) to cents,
// rounding half away from zero.
func NewAmountFromFloat(value float64) Amount {
	return Amount(math.Round(value * 100))
}

func (a Amount) Add(b Amount) Amount {
	return a + b
}

func (a Amount) Multiply(b int) Amount {
	return a * Amount(b)
}

func (a Amount) Float64() float64 {
	return float64(a) / 100
}

type Event interface {
	GetName() string
	GetEntityName() string
}
