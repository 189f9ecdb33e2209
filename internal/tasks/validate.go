package tasks

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	maxTitleLen       = 200
	maxDescriptionLen = 2000
	maxAssigneeLen    = 100
)

var ErrNotFound = errors.New("task not found")

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every rejected field of a request.
type ValidationError struct {
	Details []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		parts = append(parts, d.Field+": "+d.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, msg string) {
	e.Details = append(e.Details, FieldError{Field: field, Message: msg})
}

func (e *ValidationError) orNil() error {
	if len(e.Details) == 0 {
		return nil
	}
	return e
}

// checkText trims s and enforces 1..limit characters.
func checkText(verr *ValidationError, field, s string, limit int) string {
	s = strings.TrimSpace(s)
	switch n := utf8.RuneCountInString(s); {
	case n == 0:
		verr.add(field, "Field cannot be empty or whitespace only")
	case n > limit:
		verr.add(field, "must be at most "+strconv.Itoa(limit)+" characters")
	}
	return s
}

func checkAssignee(verr *ValidationError, s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if utf8.RuneCountInString(v) > maxAssigneeLen {
		verr.add("assigned_to", "must be at most "+strconv.Itoa(maxAssigneeLen)+" characters")
	}
	return &v
}

// Normalize trims the request in place and validates it.
func (r *CreateTaskRequest) Normalize() error {
	verr := &ValidationError{}
	r.Title = checkText(verr, "title", r.Title, maxTitleLen)
	r.Description = checkText(verr, "description", r.Description, maxDescriptionLen)
	r.AssignedTo = checkAssignee(verr, r.AssignedTo)
	if r.AssignedTo != nil && *r.AssignedTo == "" {
		r.AssignedTo = nil
	}
	return verr.orNil()
}

// Normalize trims present fields and validates them. An empty assigned_to
// clears the assignment.
func (r *UpdateTaskRequest) Normalize() error {
	verr := &ValidationError{}
	if r.Title != nil {
		v := checkText(verr, "title", *r.Title, maxTitleLen)
		r.Title = &v
	}
	if r.Description != nil {
		v := checkText(verr, "description", *r.Description, maxDescriptionLen)
		r.Description = &v
	}
	r.AssignedTo = checkAssignee(verr, r.AssignedTo)
	if r.Category != nil && !r.Category.Valid() {
		verr.add("category", "invalid category: "+string(*r.Category))
	}
	if r.Priority != nil && !r.Priority.Valid() {
		verr.add("priority", "invalid priority: "+string(*r.Priority))
	}
	if r.Status != nil && !r.Status.Valid() {
		verr.add("status", "invalid status: "+string(*r.Status))
	}
	return verr.orNil()
}

var sortColumns = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"due_date":   true,
	"priority":   true,
	"title":      true,
	"category":   true,
	"status":     true,
}

// Normalize fills defaults and rejects out-of-range values.
func (p *ListParams) Normalize() error {
	verr := &ValidationError{}

	if p.SortBy == "" {
		p.SortBy = "created_at"
	} else if !sortColumns[p.SortBy] {
		verr.add("sort_by", "unsupported sort field: "+p.SortBy)
	}

	switch strings.ToLower(p.SortOrder) {
	case "":
		p.SortOrder = "desc"
	case "asc", "desc":
		p.SortOrder = strings.ToLower(p.SortOrder)
	default:
		verr.add("sort_order", "must be asc or desc")
	}

	if p.Limit == 0 {
		p.Limit = DefaultLimit
	} else if p.Limit < 1 || p.Limit > MaxLimit {
		verr.add("limit", "must be between 1 and "+strconv.Itoa(MaxLimit))
	}
	if p.Offset < 0 {
		verr.add("offset", "must be >= 0")
	}
	if p.Status != nil && !p.Status.Valid() {
		verr.add("status", "invalid status: "+string(*p.Status))
	}
	if p.Category != nil && !p.Category.Valid() {
		verr.add("category", "invalid category: "+string(*p.Category))
	}
	if p.Priority != nil && !p.Priority.Valid() {
		verr.add("priority", "invalid priority: "+string(*p.Priority))
	}
	p.Search = strings.TrimSpace(p.Search)

	return verr.orNil()
}
