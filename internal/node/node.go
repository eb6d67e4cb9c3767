// Package node is the façade the transport layer drives: mine, submit a
// transaction, fetch the chain, fetch a balance, register peers, receive a
// block notification, and force a consensus resolve.
//
// Every state-mutating call holds Node's exclusive lock for its full
// duration — including proof-of-work search and persistence — so mining
// serializes with transaction admission by design. Read-only calls
// take a shared lock.
package node

import (
	"errors"
	"sync"

	"github.com/Ashok8601/mycoin/internal/chain"
	"github.com/Ashok8601/mycoin/internal/gossip"
	"github.com/Ashok8601/mycoin/internal/ledger"
	"github.com/Ashok8601/mycoin/internal/mempool"
	"github.com/Ashok8601/mycoin/internal/mylog"
	"github.com/Ashok8601/mycoin/internal/peerset"
	"github.com/Ashok8601/mycoin/internal/store"
)

// Node holds all process-wide core state behind a single lock.
type Node struct {
	mu sync.RWMutex

	chain      []*chain.Block
	difficulty int

	peers  *peerset.Set
	pool   *mempool.Mempool
	ledger *ledger.Ledger
	store  *store.Store
}

// New loads persisted state if present, otherwise bootstraps a genesis block
// for selfAddress. selfHostPort is this node's own "host:port" (e.g. the
// --port flag's listen address), kept out of the peer set so a node never
// registers or gossips to itself.
func New(selfAddress, selfHostPort string, st *store.Store) (*Node, error) {
	n := &Node{
		peers:  peerset.New(selfHostPort),
		pool:   mempool.New(),
		ledger: ledger.New(),
		store:  st,
	}

	doc, err := st.Load()
	if err != nil {
		return nil, err
	}

	if len(doc.Chain) == 0 {
		genesis := chain.NewGenesisBlock(selfAddress)
		n.chain = []*chain.Block{genesis}
		n.difficulty = chain.InitialDifficulty
		if err := n.persistLocked(); err != nil {
			return nil, err
		}
	} else {
		n.chain = doc.Chain
		n.difficulty = doc.Difficulty
		n.peers.ReplaceAll(doc.Nodes)
	}

	n.ledger.Recalculate(n.chain)
	return n, nil
}

// LoadForGossip satisfies gossip.PeerSource by re-reading the peer set from
// disk, so the set visible to gossip is the latest persisted one even across
// transport workers that only share the filesystem.
func (n *Node) LoadForGossip() []string {
	return n.store.LoadForGossip()
}

func (n *Node) persistLocked() error {
	return n.store.Save(store.Document{
		Chain:      n.chain,
		Difficulty: n.difficulty,
		Nodes:      n.peers.List(),
	})
}

// Mine drains the mempool into a coinbase-prefixed block, searches PoW,
// appends it, persists, retargets difficulty if due, and gossips the block.
func (n *Node) Mine(minerAddress string) (*chain.Block, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	lastBlock := n.chain[len(n.chain)-1]
	proof, err := chain.ProofOfWork(lastBlock, n.difficulty)
	if err != nil {
		return nil, err
	}
	previousHash, err := chain.Hash(lastBlock)
	if err != nil {
		return nil, err
	}

	index := len(n.chain) + 1
	reward := chain.MiningReward(index)
	coinbase := chain.Transaction{
		Sender:    chain.SystemCoinbase,
		Recipient: minerAddress,
		Amount:    reward,
	}
	pending := n.pool.Drain()
	txs := append([]chain.Transaction{coinbase}, pending...)

	newBlock := chain.NewBlock(index, txs, proof, previousHash, minerAddress, n.difficulty)
	n.chain = append(n.chain, newBlock)
	n.ledger.Recalculate(n.chain)

	if err := n.persistLocked(); err != nil {
		mylog.Log.WithError(err).Error("node: failed to persist after mining a block")
	}

	if index%chain.RetargetInterval == 0 {
		newDifficulty := chain.AdjustDifficulty(n.chain, n.difficulty)
		if newDifficulty != n.difficulty {
			n.difficulty = newDifficulty
			if err := n.persistLocked(); err != nil {
				mylog.Log.WithError(err).Error("node: failed to persist after difficulty retarget")
			}
		}
	}

	gossip.BroadcastBlock(n, newBlock)

	return newBlock, nil
}

// SubmitTransaction admits tx to the mempool and gossips it on success.
func (n *Node) SubmitTransaction(tx chain.Transaction) (*int, string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	nextIndex, err := mempool.Submit(n.pool, n.ledger, tx, len(n.chain))
	if err != nil {
		return nil, err.Error()
	}

	gossip.BroadcastTransaction(n, tx)

	return &nextIndex, "transaction added to pool"
}

// ChainView is the response shape for GetChain.
type ChainView struct {
	Chain      []*chain.Block
	Length     int
	Difficulty int
}

// GetChain returns the current chain, its length, and difficulty.
func (n *Node) GetChain() ChainView {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return ChainView{Chain: n.chain, Length: len(n.chain), Difficulty: n.difficulty}
}

// GetBalance returns address's balance as reflected by the current chain.
func (n *Node) GetBalance(address string) float64 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.ledger.GetBalance(address)
}

// RegisterPeers adds each url to the peer set and persists it.
func (n *Node) RegisterPeers(urls []string) ([]string, error) {
	if len(urls) == 0 {
		return nil, errors.New("no peer urls supplied")
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	for _, u := range urls {
		n.peers.Register(u)
	}
	if err := n.persistLocked(); err != nil {
		return nil, err
	}
	return n.peers.List(), nil
}

// ReceiveBlock is a notification that a peer mined a block. The payload
// itself is not spliced in directly — consensus resolution does the work.
func (n *Node) ReceiveBlock() bool {
	return n.Resolve()
}

// Resolve runs the longest-valid-chain adoption procedure.
func (n *Node) Resolve() bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	peers := n.peers.List()
	candidate, replaced := gossip.ResolveConflicts(peers, n.chain)
	if !replaced {
		return false
	}

	n.chain = candidate
	n.ledger.Recalculate(n.chain)
	if err := n.pool.Rebase(n.chain); err != nil {
		mylog.Log.WithError(err).Error("node: failed to rebase mempool after chain swap")
	}
	if err := n.persistLocked(); err != nil {
		mylog.Log.WithError(err).Error("node: failed to persist after chain swap")
	}

	return true
}
