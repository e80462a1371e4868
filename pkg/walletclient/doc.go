/*
Package walletclient is the client SDK for the wallet API.

It keeps a single normalized Store per session (balance, stats, the current
transaction page, the pending deposit order, and per-operation
loading/error status), a Gateway that performs the HTTP operations and
folds results and errors back into the store, a HistoryController that
drives paginated, filterable transaction lists, and the deposit/withdraw
flow controllers with their client-side validation.

Every remote operation is scoped to one operation key (wallet,
transactions, deposit, withdrawal, balanceCheck). A new request under a
key clears that key's previous error; a failed request stores a display
message under the same key and nothing else. List fetches are fenced with
a per-key sequence number so a stale response can never overwrite a newer
page.

The store never derives the balance from the transaction list. The
balance changes only when a FetchWalletDetails response is applied.
*/
package walletclient
