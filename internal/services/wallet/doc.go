/*
Package wallet is the ledger over wallet balances.

Every balance mutation goes through a compare-and-swap against the wallet's
version counter: the update succeeds only if the row still carries the version
the caller read, and only if the resulting balance stays non-negative. A lost
race is retried a bounded number of times; a genuine shortage of funds is
terminal and never retried.

Correctness rests entirely on the database's atomic conditional update, not on
in-process locking, so concurrent mutations from any number of process
instances are safe.

Usage:

	svc := wallet.NewService(store.Wallets(), cacheService, metrics)

	w, err := svc.EnsureWallet(ctx, userID, models.WalletOwnerCustomer)
	w, err = svc.Credit(ctx, w.ID, decimal.NewFromInt(50))
	w, err = svc.Debit(ctx, w.ID, decimal.NewFromInt(20))

Inside an outer database transaction, Bind returns a ledger scoped to the
transaction-bound repository so both legs of a transfer share the caller's
unit of work:

	store.WithinTransaction(ctx, func(tx repositories.Store) error {
		led := svc.Bind(tx.Wallets())
		...
	})
*/
package wallet
