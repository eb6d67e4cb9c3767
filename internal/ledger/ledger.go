// Package ledger derives per-address balances by replaying the chain. It owns
// the balance map exclusively: nothing outside this package ever patches it
// directly.
package ledger

import (
	"sync"

	"github.com/Ashok8601/mycoin/internal/chain"
)

// Ledger holds the balances derived from the most recent replay.
type Ledger struct {
	mu       sync.RWMutex
	balances map[string]float64
}

func New() *Ledger {
	return &Ledger{balances: make(map[string]float64)}
}

// Recalculate rebuilds the balance map from empty by replaying blocks in
// order. Called on load, after a new block is mined, and after a consensus
// chain swap.
func (l *Ledger) Recalculate(blocks []*chain.Block) {
	balances := make(map[string]float64)
	for _, block := range blocks {
		for _, tx := range block.Transactions {
			if tx.Sender != chain.SystemCoinbase {
				balances[tx.Sender] -= tx.Amount
				if balances[tx.Sender] < 0 {
					balances[tx.Sender] = 0
				}
			}
			balances[tx.Recipient] += tx.Amount
		}
	}

	l.mu.Lock()
	l.balances = balances
	l.mu.Unlock()
}

// GetBalance returns addr's balance, defaulting to 0 for an unseen address.
func (l *Ledger) GetBalance(addr string) float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.balances[addr]
}

// HasSufficientFunds reports whether sender's mined-chain balance covers
// amount. Pending mempool outflows are not deducted.
func (l *Ledger) HasSufficientFunds(sender string, amount float64) bool {
	return l.GetBalance(sender) >= amount
}
