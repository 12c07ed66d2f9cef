//-------------------------------------------------------------------------
//
// pgEdge E-commerce Data Generator
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package datagen provides data generation utilities.
package datagen

import (
	"math"
	"time"

	"github.com/brianvoe/gofakeit/v7"
)

// Faker provides fake data generation using gofakeit.
//
// A Faker is the only source of randomness for a generation run. It is not
// safe for concurrent use; each run owns exactly one and passes it to every
// generator so that identical seeds give identical output.
type Faker struct {
	faker *gofakeit.Faker
}

// NewFaker creates a new Faker with a random seed.
func NewFaker() *Faker {
	return &Faker{
		faker: gofakeit.New(uint64(time.Now().UnixNano())),
	}
}

// NewFakerWithSeed creates a new Faker with a specific seed for reproducibility.
func NewFakerWithSeed(seed uint64) *Faker {
	return &Faker{
		faker: gofakeit.New(seed),
	}
}

// FirstName generates a random first name.
func (f *Faker) FirstName() string {
	return f.faker.FirstName()
}

// LastName generates a random last name.
func (f *Faker) LastName() string {
	return f.faker.LastName()
}

// Email generates a random email address.
func (f *Faker) Email() string {
	return f.faker.Email()
}

// Phone generates a random phone number.
func (f *Faker) Phone() string {
	return f.faker.Phone()
}

// FullAddress generates a single-line street address including city, state
// and ZIP code.
func (f *Faker) FullAddress() string {
	return f.faker.Address().Address
}

// City generates a random city name.
func (f *Faker) City() string {
	return f.faker.City()
}

// State generates a random US state abbreviation.
func (f *Faker) State() string {
	return f.faker.StateAbr()
}

// Zip generates a random US ZIP code.
func (f *Faker) Zip() string {
	return f.faker.Zip()
}

// CountryCode generates a random two-letter country code.
func (f *Faker) CountryCode() string {
	return f.faker.CountryAbr()
}

// Company generates a random company name.
func (f *Faker) Company() string {
	return f.faker.Company()
}

// ProductName generates a random product name.
func (f *Faker) ProductName() string {
	return f.faker.ProductName()
}

// ProductDescription generates a random product description.
func (f *Faker) ProductDescription() string {
	return f.faker.ProductDescription()
}

// Word generates a random word.
func (f *Faker) Word() string {
	return f.faker.Word()
}

// UserAgent generates a random browser user agent string.
func (f *Faker) UserAgent() string {
	return f.faker.UserAgent()
}

// IPv4 generates a random IPv4 address.
func (f *Faker) IPv4() string {
	return f.faker.IPv4Address()
}

// URL generates a random URL.
func (f *Faker) URL() string {
	return f.faker.URL()
}

// UUID generates a random UUID.
func (f *Faker) UUID() string {
	return f.faker.UUID()
}

// DateRange generates a random instant within a range, in UTC.
func (f *Faker) DateRange(start, end time.Time) time.Time {
	return f.faker.DateRange(start, end).UTC()
}

// Day generates a random calendar day between the days of start and end,
// both inclusive. The result is midnight UTC.
func (f *Faker) Day(start, end time.Time) time.Time {
	first := start.UTC().Truncate(day)
	if first.Before(start) {
		first = first.Add(day)
	}
	last := end.UTC().Truncate(day)
	if !last.After(first) {
		return first
	}
	return first.AddDate(0, 0, f.Int(0, int(last.Sub(first)/day)))
}

const day = 24 * time.Hour

// Timestamp generates a random instant within a range, truncated to
// whole seconds.
func (f *Faker) Timestamp(start, end time.Time) time.Time {
	return f.DateRange(start, end).Truncate(time.Second)
}

// Int generates a random integer between min and max (inclusive).
func (f *Faker) Int(min, max int) int {
	return f.faker.IntRange(min, max)
}

// Float64 generates a random float64 between min and max.
func (f *Faker) Float64(min, max float64) float64 {
	return f.faker.Float64Range(min, max)
}

// Chance returns true with probability p.
func (f *Faker) Chance(p float64) bool {
	return f.Float64(0, 1) < p
}

// Choose returns a random element from the given slice.
func Choose[T any](f *Faker, items []T) T {
	if len(items) == 0 {
		var zero T
		return zero
	}
	return items[f.Int(0, len(items)-1)]
}

// ChooseWeighted returns a random element based on weights.
func ChooseWeighted[T any](f *Faker, items []T, weights []int) T {
	if len(items) == 0 || len(weights) == 0 {
		var zero T
		return zero
	}

	totalWeight := 0
	for _, w := range weights {
		totalWeight += w
	}

	r := f.Int(1, totalWeight)
	cumulative := 0
	for i, w := range weights {
		cumulative += w
		if r <= cumulative {
			return items[i]
		}
	}

	return items[len(items)-1]
}

// Round2 rounds v to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Truncate truncates a string to max length if needed.
func Truncate(s string, maxLen int) string {
	if len(s) > maxLen {
		return s[:maxLen]
	}
	return s
}
