// Package publicid generates the short customer-facing order identifiers
// shown on quote confirmations (e.g. "#583920").
package publicid

import (
	"fmt"
	"math/rand/v2"
)

// Digits is the number of digits in a public order ID
const Digits = 6

// New generates a random order ID of the form "#nnnnnn".
func New() string {
	// [100000, 999999]
	return fmt.Sprintf("#%06d", 100000+rand.IntN(900000))
}

// Valid checks whether a string looks like a public order ID.
func Valid(id string) bool {
	if len(id) != Digits+1 || id[0] != '#' {
		return false
	}
	for _, c := range id[1:] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
