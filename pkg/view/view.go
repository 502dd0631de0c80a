// Package view derives the dashboard's visible page from the mirrored
// record list and the ephemeral view state.
package view

import "strings"

// DefaultPageSize is the number of rows shown per dashboard page.
const DefaultPageSize = 8

// AllDepartments disables the department filter. The empty string does too.
const AllDepartments = "All"

// Record is what the derivation needs to know about a row.
type Record interface {
	GetFullName() string
	GetEmail() string
	GetDepartment() string
}

// State is the per-viewer UI state. It is never persisted.
type State struct {
	Search     string `json:"search"`
	Department string `json:"department"`
	Page       int    `json:"page"`
}

// NewState returns the initial state: no search, all departments, page 1.
func NewState() State {
	return State{Department: AllDepartments, Page: 1}
}

// WithSearch changes the search term and resets the page to 1.
func (s State) WithSearch(term string) State {
	s.Search = term
	s.Page = 1
	return s
}

// WithDepartment changes the department filter and resets the page to 1.
func (s State) WithDepartment(department string) State {
	if department == "" {
		department = AllDepartments
	}
	s.Department = department
	s.Page = 1
	return s
}

// WithPage moves to page p (minimum 1). Clamping to the last page happens
// in Derive, where the total is known.
func (s State) WithPage(p int) State {
	if p < 1 {
		p = 1
	}
	s.Page = p
	return s
}

// Apply moves from s to next following the transition rules: a change of
// search term or department always lands on page 1, otherwise next's page
// is taken.
func (s State) Apply(next State) State {
	if next.Department == "" {
		next.Department = AllDepartments
	}
	out := s
	filterChanged := false
	if next.Search != s.Search {
		out = out.WithSearch(next.Search)
		filterChanged = true
	}
	if next.Department != s.Department {
		out = out.WithDepartment(next.Department)
		filterChanged = true
	}
	if !filterChanged {
		out = out.WithPage(next.Page)
	}
	return out
}

// Page is one derived page of records.
type Page[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	From       int `json:"from"`
	To         int `json:"to"`
}

// Matches reports whether r passes the search and department filters.
func Matches(r Record, search, department string) bool {
	if department != "" && department != AllDepartments && r.GetDepartment() != department {
		return false
	}
	term := strings.ToLower(search)
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.GetFullName()), term) ||
		strings.Contains(strings.ToLower(r.GetEmail()), term)
}

// Filter keeps the records matching search and department, in input order.
func Filter[T Record](records []T, search, department string) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if Matches(r, search, department) {
			out = append(out, r)
		}
	}
	return out
}

// Derive filters records and cuts the page selected by state. The page is
// clamped into [1, TotalPages] (TotalPages is at least 1).
func Derive[T Record](records []T, state State, pageSize int) Page[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	filtered := Filter(records, state.Search, state.Department)
	total := len(filtered)

	totalPages := (total + pageSize - 1) / pageSize
	page := state.Page
	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}
	if totalPages == 0 {
		page = 1
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if end > total {
		end = total
	}

	res := Page[T]{
		Items:      make([]T, 0, end-start),
		Total:      total,
		TotalPages: totalPages,
		Page:       page,
		PageSize:   pageSize,
	}
	if total == 0 {
		return res
	}
	res.Items = append(res.Items, filtered[start:end]...)
	res.From = start + 1
	res.To = end
	return res
}

// MapItems converts the items of a page, keeping its position fields.
func MapItems[T, U any](p Page[T], f func(T) U) Page[U] {
	items := make([]U, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, f(it))
	}
	return Page[U]{
		Items:      items,
		Total:      p.Total,
		TotalPages: p.TotalPages,
		Page:       p.Page,
		PageSize:   p.PageSize,
		From:       p.From,
		To:         p.To,
	}
}
