package classifier

import "strings"

type Category string

const (
	CategoryScheduling Category = "scheduling"
	CategoryFinance    Category = "finance"
	CategoryTechnical  Category = "technical"
	CategorySafety     Category = "safety"
	CategoryGeneral    Category = "general"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryScheduling, CategoryFinance, CategoryTechnical, CategorySafety, CategoryGeneral:
		return true
	default:
		return false
	}
}

// ParseCategory accepts the wire value in any case.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	return c, c.Valid()
}

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// Rank orders priorities for sorting: high > medium > low.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

func ParsePriority(s string) (Priority, bool) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	return p, p.Valid()
}

// Entities holds the facts pulled out of a task's text. Slices are never nil.
type Entities struct {
	Dates     []string `json:"dates"`
	People    []string `json:"people"`
	Locations []string `json:"locations"`
	Actions   []string `json:"actions"`
}

type Result struct {
	Category         Category `json:"category"`
	Priority         Priority `json:"priority"`
	Entities         Entities `json:"extracted_entities"`
	SuggestedActions []string `json:"suggested_actions"`
}
