package application

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/summarizeai/sai-cli/internal/domain"
	"github.com/summarizeai/sai-cli/internal/ports"
)

// FetchPhase is the controller's state per fetch cycle.
type FetchPhase int

const (
	PhaseIdle FetchPhase = iota
	PhaseLoading
	PhaseError
)

func (p FetchPhase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseError:
		return "error"
	default:
		return "unknown"
	}
}

// HistoryView is an immutable snapshot of the controller state for
// rendering.
type HistoryView struct {
	Items        []domain.Summary
	Total        int
	Page         int
	PageSize     int
	TotalPages   int
	Search       string
	RawSearch    string
	Phase        FetchPhase
	Err          string
	Degraded     bool
	SelectedID   domain.SummaryID
	HasSelection bool
}

// CreateResult is the outcome of a summarize call. An ephemeral result was
// produced by the fallback path and is displayable but was never persisted
// server-side.
type CreateResult struct {
	Summary   domain.Summary
	Ephemeral bool
	Message   string
}

// HistoryController owns the pagination/search cursor and the in-memory
// summary list, translates cursor changes into gateway calls and
// reconciles mutations. Fetch failures keep the previous list displayed.
type HistoryController struct {
	gw        ports.Gateway
	log       zerolog.Logger
	debouncer *Debouncer

	mu        sync.Mutex
	cursor    domain.Cursor
	items     []domain.Summary
	total     int
	rawSearch string
	selected  domain.SummaryID
	selection bool
	phase     FetchPhase
	errMsg    string
	degraded  bool
	fetchGen  uint64
}

type ControllerOption func(*HistoryController)

func WithPageSize(size int) ControllerOption {
	return func(c *HistoryController) {
		if domain.ValidPageSize(size) {
			c.cursor.PageSize = size
		}
	}
}

func WithSearch(term string) ControllerOption {
	return func(c *HistoryController) {
		c.cursor.Search = term
		c.rawSearch = term
	}
}

func WithSearchDebounce(quiet time.Duration) ControllerOption {
	return func(c *HistoryController) {
		c.debouncer = NewDebouncer(quiet)
	}
}

func NewHistoryController(gw ports.Gateway, log zerolog.Logger, opts ...ControllerOption) *HistoryController {
	c := &HistoryController{
		gw:     gw,
		log:    log.With().Str("component", "history").Logger(),
		cursor: domain.NewCursor(),
		phase:  PhaseIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.debouncer == nil {
		c.debouncer = NewDebouncer(DefaultSearchDebounce)
	}
	return c
}

// Close cancels any pending debounced search.
func (c *HistoryController) Close() {
	c.debouncer.Cancel()
}

// View returns a copy of the current state.
func (c *HistoryController) View() HistoryView {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]domain.Summary, len(c.items))
	copy(items, c.items)

	return HistoryView{
		Items:        items,
		Total:        c.total,
		Page:         c.cursor.Page,
		PageSize:     c.cursor.PageSize,
		TotalPages:   domain.TotalPages(c.total, c.cursor.PageSize),
		Search:       c.cursor.Search,
		RawSearch:    c.rawSearch,
		Phase:        c.phase,
		Err:          c.errMsg,
		Degraded:     c.degraded,
		SelectedID:   c.selected,
		HasSelection: c.selection,
	}
}

// Refresh fetches the page the cursor points at and reconciles the list.
func (c *HistoryController) Refresh(ctx context.Context) error {
	cursor, gen := c.beginFetch()
	resp, err := c.gw.Get(ctx, historyListPath(cursor))
	if err != nil {
		c.recordFailure(gen, err.Error())
		return fmt.Errorf("list history: %w", err)
	}
	return c.applyFetch(cursor, gen, resp)
}

// beginFetch stamps a new fetch generation. A response is applied only if
// no later fetch has started since, which discards stale replies from rapid
// cursor changes.
func (c *HistoryController) beginFetch() (domain.Cursor, uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.fetchGen++
	c.phase = PhaseLoading
	return c.cursor, c.fetchGen
}

func (c *HistoryController) applyFetch(cursor domain.Cursor, gen uint64, resp ports.Response) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.fetchGen {
		c.log.Debug().Int("page", cursor.Page).Msg("discarding stale fetch response")
		return nil
	}

	switch resp.Kind {
	case ports.KindFallback:
		// Placeholder data never replaces real history. Keep the previous
		// list and let the view show a degraded banner.
		c.phase = PhaseIdle
		c.errMsg = ""
		c.degraded = true
		return nil

	case ports.KindUnavailable:
		c.phase = PhaseError
		c.errMsg = domain.ErrServiceUnavailable.Error()
		c.degraded = true
		return domain.ErrServiceUnavailable
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.phase = PhaseError
		c.errMsg = domain.ErrNotAuthenticated.Error()
		return domain.ErrNotAuthenticated
	}
	if !resp.OK() {
		c.phase = PhaseError
		c.errMsg = fmt.Sprintf("list history: status %d", resp.StatusCode)
		return fmt.Errorf("list history: status %d", resp.StatusCode)
	}

	var page domain.SummaryPage
	if err := resp.Decode(&page); err != nil {
		c.phase = PhaseError
		c.errMsg = "decode history response"
		return fmt.Errorf("decode history response: %w", err)
	}

	c.items = page.Items
	c.total = page.Total
	c.phase = PhaseIdle
	c.errMsg = ""
	c.degraded = false
	return nil
}

func (c *HistoryController) recordFailure(gen uint64, msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.fetchGen {
		return
	}
	c.phase = PhaseError
	c.errMsg = msg
}

// SetSearchTerm records the raw input immediately and schedules the
/// debounced fetch: while keystrokes keep arriving, nothing fires; the last
// term always does once input pauses.
func (c *HistoryController) SetSearchTerm(ctx context.Context, term string) {
	c.mu.Lock()
	c.rawSearch = term
	c.mu.Unlock()

	c.debouncer.Trigger(func() {
		c.commitSearch(ctx, term)
	})
}

func (c *HistoryController) commitSearch(ctx context.Context, term string) {
	c.mu.Lock()
	if c.cursor.Search == term {
		c.mu.Unlock()
		return
	}
	c.cursor.Search = term
	c.cursor.Page = 1
	c.mu.Unlock()

	if err := c.Refresh(ctx); err != nil {
		c.log.Warn().Err(err).Str("search", term).Msg("search fetch failed")
	}
}

// SetPage moves the cursor. Out-of-range pages are rejected before any
// request is issued; an unchanged page is a no-op.
func (c *HistoryController) SetPage(ctx context.Context, page int) error {
	c.mu.Lock()
	if page < 1 || page > domain.TotalPages(c.total, c.cursor.PageSize) {
		c.mu.Unlock()
		return domain.ErrPageOutOfRange
	}
	if page == c.cursor.Page {
		c.mu.Unlock()
		return nil
	}
	c.cursor.Page = page
	c.mu.Unlock()

	return c.Refresh(ctx)
}

// SetPageSize accepts only the fixed option set and always resets to page
// 1, since the old page index is meaningless under a new size. Setting the
// current size again is a no-op and issues no fetch.
func (c *HistoryController) SetPageSize(ctx context.Context, size int) error {
	c.mu.Lock()
	if !domain.ValidPageSize(size) {
		c.mu.Unlock()
		return domain.ErrInvalidPageSize
	}
	if size == c.cursor.PageSize {
		c.mu.Unlock()
		return nil
	}
	c.cursor.PageSize = size
	c.cursor.Page = 1
	c.mu.Unlock()

	return c.Refresh(ctx)
}

// CreateSummary submits text for summarization. A fallback response is
// surfaced as ephemeral output only: it was never persisted, so the list
// and total stay untouched. A genuine success is prepended locally and the
// first page re-fetched to reflect true server ordering.
func (c *HistoryController) CreateSummary(ctx context.Context, text string) (CreateResult, error) {
	if err := domain.ValidateSummaryInput(text); err != nil {
		return CreateResult{}, err
	}

	resp, err := c.gw.Post(ctx, summarizePath, map[string]any{"texto_a_resumir": text})
	if err != nil {
		return CreateResult{}, fmt.Errorf("create summary: %w", err)
	}

	switch resp.Kind {
	case ports.KindUnavailable:
		return CreateResult{}, domain.ErrServiceUnavailable

	case ports.KindFallback:
		var envelope struct {
			Message string `json:"message"`
		}
		_ = resp.Decode(&envelope)
		c.mu.Lock()
		c.degraded = true
		c.mu.Unlock()
		return CreateResult{
			Summary:   domain.Summary{OriginalText: text, SummaryText: envelope.Message},
			Ephemeral: true,
			Message:   envelope.Message,
		}, nil
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return CreateResult{}, domain.ErrNotAuthenticated
	}
	if !resp.OK() {
		return CreateResult{}, apiError("create summary", resp)
	}

	var created struct {
		ID        domain.SummaryID `json:"id"`
		Resumo    string           `json:"resumo"`
		CreatedAt time.Time        `json:"created_at"`
	}
	if err := resp.Decode(&created); err != nil {
		return CreateResult{}, fmt.Errorf("decode create response: %w", err)
	}

	summary := domain.Summary{
		ID:           created.ID,
		OriginalText: text,
		SummaryText:  created.Resumo,
		CreatedAt:    created.CreatedAt,
	}

	c.mu.Lock()
	c.items = append([]domain.Summary{summary}, c.items...)
	if len(c.items) > c.cursor.PageSize {
		c.items = c.items[:c.cursor.PageSize]
	}
	c.total++
	c.cursor.Page = 1
	c.mu.Unlock()

	if err := c.Refresh(ctx); err != nil {
		c.log.Warn().Err(err).Msg("refresh after create failed, keeping local prepend")
	}
	return CreateResult{Summary: summary}, nil
}

// DeleteSummary removes a record after server confirmation. If the removal
// empties a page past the first, the cursor backs up one page before the
// re-fetch pulls the next window into view.
func (c *HistoryController) DeleteSummary(ctx context.Context, id domain.SummaryID) error {
	resp, err := c.gw.Delete(ctx, summaryDeletePath(id))
	if err != nil {
		return fmt.Errorf("delete summary: %w", err)
	}

	switch resp.Kind {
	case ports.KindFallback, ports.KindUnavailable:
		// The deletion was never confirmed; leave state untouched.
		c.mu.Lock()
		c.degraded = true
		c.mu.Unlock()
		return domain.ErrServiceUnavailable
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return domain.ErrNotAuthenticated
	}
	if resp.StatusCode == http.StatusNotFound {
		return domain.ErrSummaryNotFound
	}
	if !resp.OK() {
		return apiError("delete summary", resp)
	}

	c.mu.Lock()
	kept := c.items[:0]
	for _, item := range c.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	c.items = kept
	if c.total > 0 {
		c.total--
	}
	if c.selection && c.selected == id {
		c.selection = false
		c.selected = 0
	}
	if len(c.items) == 0 && c.cursor.Page > 1 {
		c.cursor.Page--
	}
	c.mu.Unlock()

	return c.Refresh(ctx)
}

// SelectSummary marks a record as the active selection. Pure local state.
func (c *HistoryController) SelectSummary(id domain.SummaryID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = id
	c.selection = true
}

func (c *HistoryController) ClearSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = 0
	c.selection = false
}

// ExportHistory streams the server-rendered export of the current filter
// to w. A synthesized export is worthless, so fallback responses are
// refused outright.
func (c *HistoryController) ExportHistory(ctx context.Context, w io.Writer) error {
	c.mu.Lock()
	search := c.cursor.Search
	c.mu.Unlock()

	resp, err := c.gw.Get(ctx, exportPath(search))
	if err != nil {
		return fmt.Errorf("export history: %w", err)
	}
	if resp.Kind != ports.KindOK {
		return domain.ErrServiceUnavailable
	}
	if resp.StatusCode == http.StatusUnauthorized {
		return domain.ErrNotAuthenticated
	}
	if !resp.OK() {
		return apiError("export history", resp)
	}

	if _, err := w.Write(resp.Body); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}

// apiError extracts the backend's detail message from a 4xx body.
func apiError(operation string, resp ports.Response) error {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(resp.Body, &payload); err == nil && payload.Detail != "" {
		return fmt.Errorf("%s: %s", operation, payload.Detail)
	}
	return fmt.Errorf("%s: status %d", operation, resp.StatusCode)
}
