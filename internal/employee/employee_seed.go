package employee

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

var (
	sampleFirstNames = []string{"John", "Jane", "Mike", "Sarah", "David", "Emily", "Robert", "Lisa", "James", "Maria"}
	sampleLastNames  = []string{"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis", "Wilson", "Anderson"}
)

const (
	samplePhone            = "0532 123 45 67"
	sampleDateOfEmployment = "2023-01-15"
)

// SampleEmployees generates count records with ids emp-1..emp-count.
func SampleEmployees(count int, rng *rand.Rand) []Employee {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	pick := func(values []string) string {
		return values[rng.IntN(len(values))]
	}

	out := make([]Employee, 0, count)
	for i := 0; i < count; i++ {
		first := pick(sampleFirstNames)
		last := pick(sampleLastNames)
		out = append(out, Employee{
			ID:               fmt.Sprintf("emp-%d", i+1),
			FirstName:        first,
			LastName:         last,
			Email:            fmt.Sprintf("%s.%s@company.com", strings.ToLower(first), strings.ToLower(last)),
			Phone:            samplePhone,
			Position:         pick(Positions),
			Department:       pick(Departments),
			DateOfEmployment: sampleDateOfEmployment,
			DateOfBirth: fmt.Sprintf("%d-%02d-%02d",
				1985+rng.IntN(20),
				1+rng.IntN(12),
				1+rng.IntN(28),
			),
		})
	}
	return out
}

// Seed fills an empty store with sample records and reports whether it did.
func Seed(store *Store, count int, rng *rand.Rand) bool {
	if count <= 0 || len(store.Employees()) > 0 {
		return false
	}
	store.SetAll(SampleEmployees(count, rng))
	store.logger.Info("store seeded with sample employees")
	return true
}
