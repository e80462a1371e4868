package walletclient

import (
	"context"
	"sync"
	"time"
)

// DebounceWindow coalesces duplicate history fetches issued in rapid
// succession, such as duplicate-mount effects firing twice.
const DebounceWindow = 100 * time.Millisecond

// HistoryController drives the paginated, filterable transaction list.
// It holds no page cache: every page or filter change discards the
// previous items through a fresh fetch, and the store's sequence fence
// guarantees a superseded fetch can never overwrite a newer one.
type HistoryController struct {
	gw *Gateway

	mu     sync.Mutex
	page   int
	limit  int
	filter string

	lastPage   int
	lastFilter string
	lastIssued time.Time

	now func() time.Time // test hook
}

func NewHistoryController(gw *Gateway, limit int) *HistoryController {
	if limit <= 0 {
		limit = 10
	}
	return &HistoryController{
		gw:    gw,
		page:  1,
		limit: limit,
		now:   time.Now,
	}
}

// Page returns the current page number.
func (h *HistoryController) Page() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.page
}

// Filter returns the active transaction-type filter, empty for all types.
func (h *HistoryController) Filter() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.filter
}

// SetPage moves to page p and fetches it.
func (h *HistoryController) SetPage(ctx context.Context, p int) error {
	h.mu.Lock()
	if p < 1 {
		p = 1
	}
	h.page = p
	h.mu.Unlock()
	return h.fetch(ctx)
}

// SetFilter switches the transaction-type filter. The page always resets
// to 1 and a fresh fetch is issued; previously fetched data is never
// mutated in place.
func (h *HistoryController) SetFilter(ctx context.Context, filter string) error {
	h.mu.Lock()
	h.filter = filter
	h.page = 1
	h.mu.Unlock()
	return h.fetch(ctx)
}

// Refresh refetches the current page/filter combination.
func (h *HistoryController) Refresh(ctx context.Context) error {
	return h.fetch(ctx)
}

// PageItems renders the pagination control for the store's current page.
func (h *HistoryController) PageItems() []PageItem {
	page := h.gw.Store().TransactionPage()
	if page == nil {
		return nil
	}
	return BuildPageItems(page.CurrentPage, page.TotalPages)
}

func (h *HistoryController) fetch(ctx context.Context) error {
	h.mu.Lock()
	page, limit, filter := h.page, h.limit, h.filter

	// An identical fetch inside the debounce window is a duplicate mount,
	// not a user action; coalesce it.
	now := h.now()
	if page == h.lastPage && filter == h.lastFilter && now.Sub(h.lastIssued) < DebounceWindow {
		h.mu.Unlock()
		return nil
	}
	h.lastPage = page
	h.lastFilter = filter
	h.lastIssued = now
	h.mu.Unlock()

	err := h.gw.FetchTransactionHistory(ctx, page, limit, filter)
	if err != nil {
		if IsCancelled(err) {
			// Superseded by a newer fetch; nothing to surface.
			return nil
		}
		// A failed fetch must not hold the debounce window: an immediate
		// user retry of the same page has to go out again. Only drop the
		// stamp if no newer fetch recorded its own.
		h.mu.Lock()
		if h.lastPage == page && h.lastFilter == filter {
			h.lastIssued = time.Time{}
		}
		h.mu.Unlock()
		return err
	}
	return nil
}
