package dto

import "strings"

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

// QueryParams controls ordering and optional paging of list queries. Zero
// Page and Limit return every row.
type QueryParams struct {
	Page    int    `json:"page"    validate:"omitempty"`
	Limit   int    `json:"limit"   validate:"omitempty"`
	SortBy  string `json:"sortBy"  validate:"omitempty"`
	SortDir string `json:"sortDir" validate:"omitempty,oneof=ASC DESC"`
}

// Sorted builds unpaged params ordered by field. Unknown directions fall back to DESC.
func Sorted(field, dir string) QueryParams {
	dir = strings.ToUpper(dir)
	if dir != SortDirAsc {
		dir = SortDirDesc
	}

	return QueryParams{SortBy: field, SortDir: dir}
}
