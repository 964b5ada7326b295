package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestNewTaskQueryDefaults(t *testing.T) {
	ownerID := uuid.New()

	q, err := NewTaskQuery(ownerID, TaskQueryParams{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if q.OwnerID != ownerID {
		t.Errorf("Expected owner %s, got %s", ownerID, q.OwnerID)
	}
	if q.Completed != nil {
		t.Error("Expected no completed filter by default")
	}
	if q.Search != "" {
		t.Errorf("Expected no search by default, got %q", q.Search)
	}
	if q.Priority != "" {
		t.Errorf("Expected no priority filter by default, got %q", q.Priority)
	}
	if q.SortBy != SortByCreatedAt || q.Order != SortDesc {
		t.Errorf("Expected default sort createdAt desc, got %s %s", q.SortBy, q.Order)
	}
	if q.Page != DefaultPage || q.Limit != DefaultLimit {
		t.Errorf("Expected default page %d limit %d, got %d %d", DefaultPage, DefaultLimit, q.Page, q.Limit)
	}
}

func TestNewTaskQueryRequiresOwner(t *testing.T) {
	_, err := NewTaskQuery(uuid.Nil, TaskQueryParams{})
	if !errors.Is(err, ErrInvalidQuery) {
		t.Errorf("Expected ErrInvalidQuery for missing owner, got %v", err)
	}
}

func TestNewTaskQueryCompletedFilter(t *testing.T) {
	ownerID := uuid.New()

	tests := []struct {
		raw  string
		want *bool
	}{
		{"true", boolPtr(true)},
		{"false", boolPtr(false)},
		// Anything other than the exact tokens means no filter
		{"", nil},
		{"TRUE", nil},
		{"1", nil},
		{"yes", nil},
	}

	for _, tc := range tests {
		q, err := NewTaskQuery(ownerID, TaskQueryParams{Completed: tc.raw})
		if err != nil {
			t.Fatalf("completed=%q: unexpected error %v", tc.raw, err)
		}
		switch {
		case tc.want == nil && q.Completed != nil:
			t.Errorf("completed=%q: expected no filter, got %v", tc.raw, *q.Completed)
		case tc.want != nil && (q.Completed == nil || *q.Completed != *tc.want):
			t.Errorf("completed=%q: expected filter %v, got %v", tc.raw, *tc.want, q.Completed)
		}
	}
}

func TestNewTaskQueryPriorityFilter(t *testing.T) {
	ownerID := uuid.New()

	for _, valid := range []string{"low", "medium", "high"} {
		q, err := NewTaskQuery(ownerID, TaskQueryParams{Priority: valid})
		if err != nil {
			t.Fatalf("priority=%q: unexpected error %v", valid, err)
		}
		if string(q.Priority) != valid {
			t.Errorf("priority=%q: got %q", valid, q.Priority)
		}
	}

	// Unknown priorities reject the whole request instead of being dropped:
	// silently ignoring the filter would return totals the client did not ask for.
	for _, invalid := range []string{"urgent", "High", "LOW", "0"} {
		_, err := NewTaskQuery(ownerID, TaskQueryParams{Priority: invalid})
		if !errors.Is(err, ErrInvalidQuery) {
			t.Errorf("priority=%q: expected ErrInvalidQuery, got %v", invalid, err)
		}
	}
}

func TestNewTaskQuerySort(t *testing.T) {
	ownerID := uuid.New()

	tests := []struct {
		sortBy    string
		order     string
		wantField SortField
		wantOrder SortOrder
	}{
		{"createdAt", "asc", SortByCreatedAt, SortAsc},
		{"title", "asc", SortByTitle, SortAsc},
		{"priority", "desc", SortByPriority, SortDesc},
		{"dueDate", "", SortByDueDate, SortDesc},
		// Unknown sort keys silently fall back to createdAt desc,
		// dropping the direction along with the key
		{"owner", "asc", SortByCreatedAt, SortDesc},
		{"user_id; DROP TABLE tasks", "asc", SortByCreatedAt, SortDesc},
		// An absent sort key defaults to createdAt but the direction
		// still applies
		{"", "asc", SortByCreatedAt, SortAsc},
		{"", "desc", SortByCreatedAt, SortDesc},
		{"", "", SortByCreatedAt, SortDesc},
		// Unknown direction on a valid key keeps the default direction
		{"title", "sideways", SortByTitle, SortDesc},
	}

	for _, tc := range tests {
		q, err := NewTaskQuery(ownerID, TaskQueryParams{SortBy: tc.sortBy, Order: tc.order})
		if err != nil {
			t.Fatalf("sortBy=%q order=%q: unexpected error %v", tc.sortBy, tc.order, err)
		}
		if q.SortBy != tc.wantField || q.Order != tc.wantOrder {
			t.Errorf("sortBy=%q order=%q: got %s %s, want %s %s",
				tc.sortBy, tc.order, q.SortBy, q.Order, tc.wantField, tc.wantOrder)
		}
	}
}

func TestNewTaskQueryPagination(t *testing.T) {
	ownerID := uuid.New()

	valid := []struct {
		page, limit string
		wantPage    int
		wantLimit   int
	}{
		{"", "", 1, DefaultLimit},
		{"1", "1", 1, 1},
		{"3", "50", 3, 50},
		{"1", "100", 1, 100},
	}
	for _, tc := range valid {
		q, err := NewTaskQuery(ownerID, TaskQueryParams{Page: tc.page, Limit: tc.limit})
		if err != nil {
			t.Fatalf("page=%q limit=%q: unexpected error %v", tc.page, tc.limit, err)
		}
		if q.Page != tc.wantPage || q.Limit != tc.wantLimit {
			t.Errorf("page=%q limit=%q: got %d/%d, want %d/%d",
				tc.page, tc.limit, q.Page, q.Limit, tc.wantPage, tc.wantLimit)
		}
	}

	// Out-of-range values are rejected, never clamped
	invalid := []TaskQueryParams{
		{Page: "0"},
		{Page: "-1"},
		{Page: "abc"},
		{Page: "1.5"},
		{Limit: "0"},
		{Limit: "-5"},
		{Limit: "101"},
		{Limit: "many"},
	}
	for _, params := range invalid {
		if _, err := NewTaskQuery(ownerID, params); !errors.Is(err, ErrInvalidQuery) {
			t.Errorf("params=%+v: expected ErrInvalidQuery, got %v", params, err)
		}
	}
}

func TestTaskQueryOffset(t *testing.T) {
	q := TaskQuery{Page: 1, Limit: 20}
	if q.Offset() != 0 {
		t.Errorf("Expected offset 0 for page 1, got %d", q.Offset())
	}

	q = TaskQuery{Page: 3, Limit: 10}
	if q.Offset() != 20 {
		t.Errorf("Expected offset 20 for page 3 limit 10, got %d", q.Offset())
	}
}

func TestTaskQueryPages(t *testing.T) {
	q := TaskQuery{Limit: 10}

	tests := []struct {
		total int
		want  int
	}{
		{0, 0},
		{1, 1},
		{10, 1},
		{11, 2},
		{95, 10},
	}
	for _, tc := range tests {
		if got := q.Pages(tc.total); got != tc.want {
			t.Errorf("Pages(%d) with limit 10 = %d, want %d", tc.total, got, tc.want)
		}
	}

	// Pages for a sparse page request still reflect the full filtered count
	q = TaskQuery{Page: 2, Limit: 1}
	if got := q.Pages(2); got != 2 {
		t.Errorf("Pages(2) with limit 1 = %d, want 2", got)
	}
}

func boolPtr(v bool) *bool { return &v }
