package ledger

import "errors"

// ErrTransactionActive is returned by Begin while another transaction is open
var ErrTransactionActive = errors.New("ledger transaction already active")

// Transaction logs the faces committed since Begin so they can be discarded
// as a unit
type Transaction struct {
	l     *Ledger
	added []FaceID
	done  bool
}

// Begin opens a transaction. Only one transaction can be open at a time.
func (l *Ledger) Begin() (*Transaction, error) {
	if l.tx != nil {
		return nil, ErrTransactionActive
	}
	l.tx = &Transaction{l: l}
	return l.tx, nil
}

// Added returns the faces committed inside the transaction so far
func (t *Transaction) Added() []FaceID {
	out := make([]FaceID, len(t.added))
	copy(out, t.added)
	return out
}

// Commit keeps every face added inside the transaction
func (t *Transaction) Commit() {
	if t.done {
		return
	}
	t.done = true
	t.l.tx = nil
}

// Rollback removes, newest first, every face added inside the transaction
// together with its edge uses
func (t *Transaction) Rollback() {
	if t.done {
		return
	}
	t.done = true
	t.l.tx = nil
	for i := len(t.added) - 1; i >= 0; i-- {
		t.l.RemoveFaceWithEdges(t.added[i])
	}
}
