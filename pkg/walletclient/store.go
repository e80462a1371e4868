package walletclient

import "sync"

// Store is the single source of truth for wallet state on the client.
// One instance lives per session; all mutations go through its methods so
// the invariants hold under concurrent gateway callbacks.
type Store struct {
	mu sync.Mutex

	wallet       *Wallet
	stats        *WalletStats
	page         *TransactionPage
	pendingOrder *PendingOrder
	balanceCheck *BalanceCheck

	status map[OperationKey]*OperationStatus

	// Monotonic per-key request sequence. A response is applied only if
	// its sequence still matches the latest issued request for the key.
	seq map[OperationKey]uint64
}

func NewStore() *Store {
	s := &Store{}
	s.initLocked()
	return s
}

func (s *Store) initLocked() {
	s.wallet = nil
	s.stats = nil
	s.page = nil
	s.pendingOrder = nil
	s.balanceCheck = nil
	s.status = make(map[OperationKey]*OperationStatus, len(operationKeys))
	for _, k := range operationKeys {
		s.status[k] = &OperationStatus{}
	}
	s.seq = make(map[OperationKey]uint64, len(operationKeys))
}

// Reset returns all slices to their initial values. Used on logout or
// wallet teardown.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.initLocked()
}

// --- per-key status ---

// BeginRequest marks the key loading, clears its previous error, and
// returns the sequence number fencing this request.
func (s *Store) BeginRequest(key OperationKey) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.statusLocked(key)
	st.Loading = true
	st.Error = ""
	s.seq[key]++
	return s.seq[key]
}

// StillCurrent reports whether seq is the latest issued request for key.
func (s *Store) StillCurrent(key OperationKey, seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq[key] == seq
}

// FinishRequest clears the loading flag for key.
func (s *Store) FinishRequest(key OperationKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statusLocked(key).Loading = false
}

// FailRequest stores a display message under key and clears its loading
// flag.
func (s *Store) FailRequest(key OperationKey, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.statusLocked(key)
	st.Loading = false
	st.Error = message
}

// ClearError dismisses the error for one key only.
func (s *Store) ClearError(key OperationKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statusLocked(key).Error = ""
}

// ClearAllErrors resets every error slot.
func (s *Store) ClearAllErrors() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, st := range s.status {
		st.Error = ""
	}
}

// Status returns a copy of the key's loading/error slot.
func (s *Store) Status(key OperationKey) OperationStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.statusLocked(key)
}

func (s *Store) statusLocked(key OperationKey) *OperationStatus {
	st, ok := s.status[key]
	if !ok {
		st = &OperationStatus{}
		s.status[key] = st
	}
	return st
}

// --- wallet / stats ---

// ApplyWalletDetails replaces wallet and stats wholesale. This is the
// only path that changes the balance.
func (s *Store) ApplyWalletDetails(wallet *Wallet, stats *WalletStats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wallet = wallet
	s.stats = stats
}

func (s *Store) Wallet() *Wallet {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.wallet == nil {
		return nil
	}
	w := *s.wallet
	return &w
}

func (s *Store) Stats() *WalletStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stats == nil {
		return nil
	}
	st := *s.stats
	return &st
}

// Balance returns the authoritative balance from the last applied wallet
// details, or 0 when none have been applied yet.
func (s *Store) Balance() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.wallet == nil {
		return 0
	}
	return s.wallet.Balance
}

// --- transaction page ---

// ApplyTransactionPage replaces the page wholesale, preserving item order
// exactly as received.
func (s *Store) ApplyTransactionPage(items []Transaction, page, totalPages int, total int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page = &TransactionPage{
		Items:       items,
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalCount:  total,
	}
}

// PrependOptimisticTransaction inserts tx at index 0 so the UI reflects a
// just-submitted withdrawal before the next refetch. The balance is not
// touched.
func (s *Store) PrependOptimisticTransaction(tx Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.page == nil {
		s.page = &TransactionPage{CurrentPage: 1, TotalPages: 1}
	}
	s.page.Items = append([]Transaction{tx}, s.page.Items...)
	s.page.TotalCount++
}

func (s *Store) TransactionPage() *TransactionPage {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.page == nil {
		return nil
	}
	cp := *s.page
	cp.Items = append([]Transaction(nil), s.page.Items...)
	return &cp
}

// --- pending order ---

func (s *Store) SetPendingOrder(order *PendingOrder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingOrder = order
}

func (s *Store) ClearPendingOrder() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingOrder = nil
}

func (s *Store) PendingOrder() *PendingOrder {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pendingOrder == nil {
		return nil
	}
	o := *s.pendingOrder
	return &o
}

// --- balance check ---

// SetBalanceCheck stores the probe result separately from the wallet; it
// is cleared independently and never mutates balance state.
func (s *Store) SetBalanceCheck(check *BalanceCheck) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balanceCheck = check
}

func (s *Store) ClearBalanceCheck() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balanceCheck = nil
}

func (s *Store) BalanceCheck() *BalanceCheck {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.balanceCheck == nil {
		return nil
	}
	b := *s.balanceCheck
	return &b
}
