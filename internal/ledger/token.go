package ledger

// TokenKind discriminates the two non-fungible token variants sharing the
// registry.  Tagging every entry with its kind (instead of relying on the
// disjoint id derivation alone) makes kind confusion impossible even if a
// caller hands the wrong id to an operation.
type TokenKind uint8

const (
	// KindReservation marks a live, paid seat hold.  Token id = seat id.
	KindReservation TokenKind = iota
	// KindBoardingPass marks a boarding credential issued at check-in.
	KindBoardingPass
)

// String returns the kind name for logs and API responses.
func (k TokenKind) String() string {
	switch k {
	case KindReservation:
		return "RESERVATION"
	case KindBoardingPass:
		return "BOARDING_PASS"
	}
	return "UNKNOWN"
}

// token is one live registry entry.  approved is the single party allowed
// to manage the token besides its owner; hasApproved distinguishes "no
// approval" from an approval of the zero address.
type token struct {
	kind        TokenKind
	owner       Address
	approved    Address
	hasApproved bool
}

// mintToken registers a new token.  initialApproved, when non-nil, is the
// approval granted as part of the mint itself (bookings approve the
// seat's airline this way).  Callers hold l.mu.
func (l *Ledger) mintToken(kind TokenKind, id ID, owner Address, initialApproved *Address) error {
	if _, live := l.tokens[id]; live {
		return ErrAlreadyExists
	}
	t := &token{kind: kind, owner: owner}
	if initialApproved != nil {
		t.approved = *initialApproved
		t.hasApproved = true
	}
	l.tokens[id] = t
	return nil
}

// burnToken destroys a token, clearing its owner and any approval.
// Callers hold l.mu.
func (l *Ledger) burnToken(id ID) error {
	if _, live := l.tokens[id]; !live {
		return ErrNotFound
	}
	delete(l.tokens, id)
	return nil
}

// Exists reports whether a token with the given id is live.
func (l *Ledger) Exists(id ID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, live := l.tokens[id]
	return live
}

// OwnerOf returns the current owner of a live token, or ErrNotFound.
func (l *Ledger) OwnerOf(id ID) (Address, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	t, live := l.tokens[id]
	if !live {
		return Address{}, ErrNotFound
	}
	return t.owner, nil
}

// Approved returns the approved party for a live token.  The boolean is
// false when no approval is set.
func (l *Ledger) Approved(id ID) (Address, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	t, live := l.tokens[id]
	if !live {
		return Address{}, false, ErrNotFound
	}
	return t.approved, t.hasApproved, nil
}

// KindOf returns the kind of a live token, or ErrNotFound.
func (l *Ledger) KindOf(id ID) (TokenKind, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	t, live := l.tokens[id]
	if !live {
		return 0, ErrNotFound
	}
	return t.kind, nil
}

// Approve sets the approved party on a token.  Only the current owner
// may change it; everyone else fails with ErrNotTokenOwner.
func (l *Ledger) Approve(id ID, approved Address, caller Address) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	t, live := l.tokens[id]
	if !live {
		return ErrNotFound
	}
	if t.owner != caller {
		return ErrNotTokenOwner
	}
	t.approved = approved
	t.hasApproved = true
	return nil
}
