package domain

import (
	"math"
	"strings"
	"time"
)

// SummaryID is the server-assigned identifier of a summary record.
type SummaryID int64

// Summary is one summarization result owned by the authenticated account.
// Records are immutable once created; the client only removes them.
type Summary struct {
	ID           SummaryID `json:"id"`
	OriginalText string    `json:"original_text"`
	SummaryText  string    `json:"summary_text"`
	CreatedAt    time.Time `json:"created_at"`
}

// SummaryPage is one window of history records plus the total count of
// records matching the current filter, ordered most recent first.
type SummaryPage struct {
	Items []Summary `json:"items"`
	Total int       `json:"total"`
}

// PageSizeOptions is the fixed set of page sizes the history view offers.
var PageSizeOptions = []int{5, 10, 25, 50}

const DefaultPageSize = 10

func ValidPageSize(size int) bool {
	for _, option := range PageSizeOptions {
		if size == option {
			return true
		}
	}
	return false
}

// Cursor determines which slice of history is requested.
type Cursor struct {
	Page     int
	PageSize int
	Search   string
}

func NewCursor() Cursor {
	return Cursor{Page: 1, PageSize: DefaultPageSize}
}

// Skip is the offset of the cursor's first record.
func (c Cursor) Skip() int {
	return (c.Page - 1) * c.PageSize
}

// TotalPages reports how many pages a result set of total records spans.
// An empty result set still has one (empty) page.
func TotalPages(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 1
	}
	return int(math.Ceil(float64(total) / float64(pageSize)))
}

// ValidateSummaryInput rejects text that is empty after trimming.
func ValidateSummaryInput(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyText
	}
	return nil
}
