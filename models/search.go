package models

import "strings"

// FacetAll is the sentinel the storefront UI sends for an unselected facet.
const FacetAll = "All"

// SearchFilters holds the catalog filter criteria. CarType and Brand are
// exact-match facets; Query is a free-text substring search.
type SearchFilters struct {
	Query   string `form:"query" json:"query"`
	CarType string `form:"carType" json:"carType"`
	Brand   string `form:"brand" json:"brand"`
}

// Matches reports whether the car satisfies every provided constraint.
// Facets are case-sensitive exact matches and ignore the "All" sentinel.
// The query matches case-insensitively as a substring against brand, model,
// type and description; a blank query is no constraint at all.
func (f SearchFilters) Matches(car Car) bool {
	if f.CarType != "" && f.CarType != FacetAll && car.CarType != f.CarType {
		return false
	}
	if f.Brand != "" && f.Brand != FacetAll && car.Brand != f.Brand {
		return false
	}

	query := strings.TrimSpace(f.Query)
	if query == "" {
		return true
	}
	query = strings.ToLower(query)
	return strings.Contains(strings.ToLower(car.Brand), query) ||
		strings.Contains(strings.ToLower(car.CarModel), query) ||
		strings.Contains(strings.ToLower(car.CarType), query) ||
		strings.Contains(strings.ToLower(car.Description), query)
}

// FilterCars returns the cars matching the filters, in catalog order.
// There is no ranking: matching is a boolean predicate.
func FilterCars(cars []Car, filters SearchFilters) []Car {
	matched := make([]Car, 0, len(cars))
	for _, car := range cars {
		if filters.Matches(car) {
			matched = append(matched, car)
		}
	}
	return matched
}

// SuggestionSet groups autocomplete suggestions by the catalog dimension
// they were found in.
type SuggestionSet struct {
	Brands             []string `json:"brands"`
	Models             []string `json:"models"`
	CarTypes           []string `json:"carTypes"`
	DescriptionMatches []string `json:"descriptionMatches"`
}

// Suggest collects unique brands, models and car types whose name contains
// the query, plus "brand model" labels for cars whose description matches.
// A blank query yields an empty set.
func Suggest(cars []Car, query string) SuggestionSet {
	suggestions := SuggestionSet{
		Brands:             []string{},
		Models:             []string{},
		CarTypes:           []string{},
		DescriptionMatches: []string{},
	}

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return suggestions
	}

	// Values are deduplicated per dimension, preserving catalog order.
	seen := make(map[string]bool)
	add := func(dimension string, dst *[]string, value string) {
		key := dimension + "\x00" + value
		if !seen[key] {
			seen[key] = true
			*dst = append(*dst, value)
		}
	}

	for _, car := range cars {
		if strings.Contains(strings.ToLower(car.Brand), query) {
			add("brand", &suggestions.Brands, car.Brand)
		}
		if strings.Contains(strings.ToLower(car.CarModel), query) {
			add("model", &suggestions.Models, car.CarModel)
		}
		if strings.Contains(strings.ToLower(car.CarType), query) {
			add("type", &suggestions.CarTypes, car.CarType)
		}
		if car.Description != "" && strings.Contains(strings.ToLower(car.Description), query) {
			add("description", &suggestions.DescriptionMatches, car.Brand+" "+car.CarModel)
		}
	}
	return suggestions
}
