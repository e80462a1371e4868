/*
Package wallet provides the tournament wallet service.

It owns every balance mutation on the platform:
- Deposit orders against the external payment provider and their verification
- Withdrawal requests to bank accounts (funds held as pending entries)
- Tournament entry fees and prize payouts
- Transaction history with pagination and type filtering
- Balance pre-checks for entry flows

Usage:

	svc := wallet.NewService(repo, orders, cache, provider, wallet.Config{}, nil, logger)

	details, err := svc.GetDetails(ctx, userID)

	order, err := svc.CreateDepositOrder(ctx, userID, 500)
	err = svc.VerifyDeposit(ctx, userID, payload)

	tx, err := svc.Withdraw(ctx, userID, 1000, bank)

Balance invariant:

The wallet balance changes only inside a database transaction that also
writes the ledger entry carrying the post-mutation BalanceAfter snapshot.
Nothing derives a balance from the ledger at read time.
*/
package wallet
