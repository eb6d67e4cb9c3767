// Package mempool holds pending transactions not yet included in a block,
// gated on signature and funds admission.
package mempool

import (
	"errors"
	"sync"

	"github.com/Ashok8601/mycoin/internal/canonjson"
	"github.com/Ashok8601/mycoin/internal/chain"
	"github.com/Ashok8601/mycoin/internal/cryptoutil"
	"github.com/Ashok8601/mycoin/internal/ledger"
)

var (
	ErrCoinbaseSubmit     = errors.New("mempool: cannot submit a SYSTEM_COINBASE transaction")
	ErrInvalidSignature   = errors.New("mempool: invalid digital signature")
	ErrInsufficientFunds  = errors.New("mempool: insufficient funds")
)

// Mempool is an ordered list of pending transactions. Order is insertion
// order — mined blocks include them in exactly that order.
type Mempool struct {
	mu           sync.Mutex
	transactions []chain.Transaction
}

func New() *Mempool {
	return &Mempool{}
}

// Submit validates tx against ldgr and appends it on success. Returns the
// index the transaction would land in if mined next.
func Submit(m *Mempool, ldgr *ledger.Ledger, tx chain.Transaction, chainLength int) (int, error) {
	if tx.Sender == chain.SystemCoinbase {
		return 0, ErrCoinbaseSubmit
	}
	if !cryptoutil.Verify(tx.Sender, tx.Signature, tx.Sender, tx.Recipient, tx.Amount) {
		return 0, ErrInvalidSignature
	}
	if !ldgr.HasSufficientFunds(tx.Sender, tx.Amount) {
		return 0, ErrInsufficientFunds
	}

	m.mu.Lock()
	m.transactions = append(m.transactions, tx)
	m.mu.Unlock()

	return chainLength + 1, nil
}

// Drain empties the mempool and returns what it held, in insertion order.
// Used exactly once per mined block, atomic with the block append under the
// node façade's single-writer lock.
func (m *Mempool) Drain() []chain.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	drained := m.transactions
	m.transactions = nil
	return drained
}

// Transactions returns a snapshot of the pending transactions without
// draining them.
func (m *Mempool) Transactions() []chain.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]chain.Transaction, len(m.transactions))
	copy(out, m.transactions)
	return out
}

// Rebase keeps only the pending transactions whose canonical form does not
// already appear anywhere in adoptedChain, after a consensus chain swap.
func (m *Mempool) Rebase(adoptedChain []*chain.Block) error {
	included := make(map[string]struct{})
	for _, block := range adoptedChain {
		for _, tx := range block.Transactions {
			if tx.Sender == chain.SystemCoinbase {
				continue
			}
			key, err := canonjson.Marshal(tx)
			if err != nil {
				return err
			}
			included[string(key)] = struct{}{}
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.transactions[:0:0]
	for _, tx := range m.transactions {
		key, err := canonjson.Marshal(tx)
		if err != nil {
			return err
		}
		if _, ok := included[string(key)]; !ok {
			kept = append(kept, tx)
		}
	}
	m.transactions = kept
	return nil
}
