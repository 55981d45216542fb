package ledger

// Escrow accounting.  Booking credits an airline's balance inside the
// booking transaction (see BookSeat); withdrawal pays the whole balance
// out through the external payout hook.

// EscrowBalance returns the airline's collected, unwithdrawn fees.
func (l *Ledger) EscrowBalance(airline Address) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.escrow[airline]
}

// WithdrawFlightFees transfers the airline's entire escrow balance to it
// and resets the balance to zero.  Only the airline itself may withdraw.
//
// The balance is zeroed before the payout hook runs.  Paying out can
// hand control to arbitrary receiving logic, and that logic may call
// back into the ledger; because the zeroing already happened, a
// reentrant withdrawal sees an empty balance and transfers nothing.  If
// the payout itself fails the balance is restored and the error
// returned, leaving the ledger as it was before the call.
func (l *Ledger) WithdrawFlightFees(airline Address, caller Address) (uint64, error) {
	if caller != airline {
		return 0, ErrUnauthorized
	}

	l.mu.Lock()
	amount := l.escrow[airline]
	l.escrow[airline] = 0
	l.mu.Unlock()

	if amount == 0 || l.payout == nil {
		return amount, nil
	}
	if err := l.payout(airline, amount); err != nil {
		l.mu.Lock()
		l.escrow[airline] += amount
		l.mu.Unlock()
		return 0, err
	}
	return amount, nil
}
