//-------------------------------------------------------------------------
//
// pgEdge E-commerce Data Generator
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package weighting implements purchase weighting for order generation:
// per-segment order probabilities and seasonal date multipliers.
package weighting

import (
	"fmt"
	"sort"
	"time"
)

// Seasonality defines the interface for seasonal purchase profiles.
type Seasonality interface {
	// Name returns the profile name.
	Name() string

	// Description returns a human-readable description.
	Description() string

	// Multiplier returns the relative purchase volume for the given date
	// (1.0 = baseline).
	Multiplier(t time.Time) float64

	// Max returns the largest value Multiplier can return.
	Max() float64
}

var registry = make(map[string]func() Seasonality)

// Register adds a profile constructor to the registry.
func Register(name string, constructor func() Seasonality) {
	registry[name] = constructor
}

// Get retrieves a seasonal profile by name.
func Get(name string) (Seasonality, error) {
	constructor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown seasonal profile: %s", name)
	}
	return constructor(), nil
}

// List returns all registered profile names in sorted order.
func List() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Flat applies no seasonal variation.
type Flat struct{}

// NewFlat creates a new Flat profile.
func NewFlat() Seasonality {
	return Flat{}
}

func (Flat) Name() string {
	return "flat"
}

func (Flat) Description() string {
	return "No seasonal variation"
}

func (Flat) Multiplier(time.Time) float64 {
	return 1.0
}

func (Flat) Max() float64 {
	return 1.0
}

// RetailHoliday models holiday and summer shopping peaks.
// November, December: 150%
// June, July: 120%
// Other months: 100%
type RetailHoliday struct{}

// NewRetailHoliday creates a new RetailHoliday profile.
func NewRetailHoliday() Seasonality {
	return RetailHoliday{}
}

func (RetailHoliday) Name() string {
	return "retail-holiday"
}

func (RetailHoliday) Description() string {
	return "Holiday peak (Nov/Dec 1.5x) and summer bump (Jun/Jul 1.2x)"
}

func (RetailHoliday) Multiplier(t time.Time) float64 {
	switch t.Month() {
	case time.November, time.December:
		return 1.5
	case time.June, time.July:
		return 1.2
	default:
		return 1.0
	}
}

func (RetailHoliday) Max() float64 {
	return 1.5
}

func init() {
	Register("flat", NewFlat)
	Register("retail-holiday", NewRetailHoliday)
}
