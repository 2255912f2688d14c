// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package idgen generates short random identifiers from an alphabet that
// leaves out visually confusable characters (0/O/o, 1/l/I/i).
package idgen

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

// Alphabet is the set of characters IDs are drawn from.
const Alphabet = "abcdefghjkmnpqrstuvwxyz23456789ABCDEFGHJKMNPQRSTUVWXYZ"

// Excluded lists the confusable characters that never appear in an ID.
const Excluded = "0Oo1lIi"

// DefaultLength is the ID length used when none is requested.
const DefaultLength = 10

// DefaultEpsilon is the collision probability used by MaxIDs estimates.
const DefaultEpsilon = 0.00001

// ErrInvalidLength is returned for lengths below 1.
var ErrInvalidLength = errors.New("length must be a positive integer")

var alphabetSize = big.NewInt(int64(len(Alphabet)))

// Generate returns a random ID of the given length. Each character is drawn
// uniformly from Alphabet using crypto/rand.
func Generate(length int) (string, error) {
	if length < 1 {
		return "", fmt.Errorf("%w: got %d", ErrInvalidLength, length)
	}

	var b strings.Builder
	b.Grow(length)
	for range length {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", fmt.Errorf("reading random source: %w", err)
		}
		b.WriteByte(Alphabet[n.Int64()])
	}
	return b.String(), nil
}

// GenerateN returns count IDs of the given length.
func GenerateN(length, count int) ([]string, error) {
	if count < 1 {
		return nil, fmt.Errorf("count must be a positive integer: got %d", count)
	}
	ids := make([]string, 0, count)
	for range count {
		id, err := Generate(length)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// UUID returns a random (version 4) UUID string.
func UUID() string {
	return uuid.NewString()
}

// MaxIDs estimates how many IDs of the given length can be generated before
// the probability of any collision reaches epsilon, using the birthday bound
// N ≈ sqrt(-2 M ln(1-epsilon)) with M = len(Alphabet)^length.
func MaxIDs(length int, epsilon float64) float64 {
	if length < 1 || epsilon <= 0 || epsilon >= 1 {
		return 0
	}
	m := math.Pow(float64(len(Alphabet)), float64(length))
	return math.Sqrt(-2 * m * math.Log1p(-epsilon))
}
