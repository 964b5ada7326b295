package domain

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// Pagination bounds for task list queries.
const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// SortField identifies a task column the client may sort by. Values are
// drawn from a closed set; raw client strings never reach the store's
// ordering mechanism.
type SortField string

// Allowed sort fields.
const (
	SortByCreatedAt SortField = "createdAt"
	SortByTitle     SortField = "title"
	SortByPriority  SortField = "priority"
	SortByDueDate   SortField = "dueDate"
)

// SortOrder is the direction of a sort.
type SortOrder string

// Sort directions.
const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// TaskQueryParams is the raw, untrusted input for a task list request,
// exactly as it arrived on the query string. Empty strings mean the
// parameter was absent.
type TaskQueryParams struct {
	Completed string
	Search    string
	Priority  string
	SortBy    string
	Order     string
	Page      string
	Limit     string
}

// TaskQuery is the validated, immutable plan for one task list request.
// It can only be built through NewTaskQuery, which guarantees the owner
// scope is always present and every client-supplied value has been checked
// against its allowed set or bounds.
type TaskQuery struct {
	// OwnerID scopes the whole query to one user's tasks. It is mandatory:
	// executing a TaskQuery must be structurally incapable of returning
	// another user's rows.
	OwnerID uuid.UUID

	// Completed filters by completion state when non-nil.
	Completed *bool

	// Search is a literal, case-insensitive substring to match against the
	// title. It has not been escaped; stores must treat it as plain text,
	// not as pattern syntax.
	Search string

	// Priority filters by exact priority when non-empty.
	Priority Priority

	SortBy SortField
	Order  SortOrder

	Page  int
	Limit int
}

// NewTaskQuery validates the raw parameters and builds a query plan scoped
// to the given owner.
//
// Validation policy mirrors how each knob fails:
//
//   - completed: strict "true"/"false"; anything else means no filter.
//   - search: passed through as literal text.
//   - priority: must match the enum exactly or the whole request is
//     rejected, since silently dropping it would skew pagination totals.
//   - sortBy: absent defaults to createdAt with the requested direction;
//     an unrecognized key silently falls back to createdAt desc.
//   - page/limit: out-of-range values are rejected rather than clamped so
//     the echoed page/limit always match what was asked for.
func NewTaskQuery(ownerID uuid.UUID, params TaskQueryParams) (TaskQuery, error) {
	if ownerID == uuid.Nil {
		return TaskQuery{}, NewValidationError("owner", "is required", ErrInvalidQuery)
	}

	q := TaskQuery{
		OwnerID: ownerID,
		Search:  params.Search,
		SortBy:  SortByCreatedAt,
		Order:   SortDesc,
		Page:    DefaultPage,
		Limit:   DefaultLimit,
	}

	// Permissive boolean parse: only the exact tokens count as a filter.
	switch params.Completed {
	case "true":
		v := true
		q.Completed = &v
	case "false":
		v := false
		q.Completed = &v
	}

	if params.Priority != "" {
		priority, err := ParsePriority(params.Priority)
		if err != nil {
			return TaskQuery{}, NewValidationError("priority", "must be low, medium, or high", ErrInvalidQuery)
		}
		q.Priority = priority
	}

	// An absent sortBy defaults to createdAt but still honors the requested
	// direction; only an unrecognized key falls all the way back to
	// createdAt desc, dropping the direction with it.
	if field, ok := parseSortField(params.SortBy); ok || params.SortBy == "" {
		if ok {
			q.SortBy = field
		}
		if params.Order == string(SortAsc) {
			q.Order = SortAsc
		}
	}

	if params.Page != "" {
		page, err := parseBoundedInt(params.Page, 1, 0)
		if err != nil {
			return TaskQuery{}, NewValidationError("page", "must be a positive integer", ErrInvalidQuery)
		}
		q.Page = page
	}

	if params.Limit != "" {
		limit, err := parseBoundedInt(params.Limit, 1, MaxLimit)
		if err != nil {
			return TaskQuery{}, NewValidationError("limit", fmt.Sprintf("must be between 1 and %d", MaxLimit), ErrInvalidQuery)
		}
		q.Limit = limit
	}

	return q, nil
}

// Offset returns the number of rows to skip for the requested page.
func (q TaskQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// Pages returns the total page count for the given number of matching rows,
// computed as ceil(total/limit).
func (q TaskQuery) Pages(total int) int {
	if total <= 0 {
		return 0
	}
	return (total + q.Limit - 1) / q.Limit
}

// parseSortField checks a raw sort key against the allow-list.
func parseSortField(s string) (SortField, bool) {
	switch SortField(s) {
	case SortByCreatedAt, SortByTitle, SortByPriority, SortByDueDate:
		return SortField(s), true
	}
	return "", false
}

// parseBoundedInt parses s as a base-10 integer and checks it against min
// (and max, when max > 0).
func parseBoundedInt(s string, min, max int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	if n < min || (max > 0 && n > max) {
		return 0, fmt.Errorf("out of range: %q", s)
	}
	return n, nil
}
