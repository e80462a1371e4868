package walletclient

// PageItem is one entry of a rendered pagination control: either a
// clickable page number, the disabled current page, or an inert ellipsis.
type PageItem struct {
	Page     int
	Ellipsis bool
	Current  bool
}

// BuildPageItems computes the pagination control for the transaction
// list. With one page or fewer there is no control at all. Otherwise the
// current page and its immediate neighbors are always present; page 1 and
// the last page are pinned when the neighbor block drifts away from them,
// with ellipsis placeholders covering the gaps.
func BuildPageItems(current, totalPages int) []PageItem {
	if totalPages <= 1 {
		return nil
	}
	if current < 1 {
		current = 1
	}
	if current > totalPages {
		current = totalPages
	}

	var items []PageItem

	if current > 2 {
		items = append(items, PageItem{Page: 1})
		if current > 3 {
			items = append(items, PageItem{Ellipsis: true})
		}
	}

	lo := current - 1
	if lo < 1 {
		lo = 1
	}
	hi := current + 1
	if hi > totalPages {
		hi = totalPages
	}
	for p := lo; p <= hi; p++ {
		items = append(items, PageItem{Page: p, Current: p == current})
	}

	if current < totalPages-1 {
		if current < totalPages-2 {
			items = append(items, PageItem{Ellipsis: true})
		}
		items = append(items, PageItem{Page: totalPages})
	}

	return items
}
