// Package chain implements the block/chain data model, canonical hashing,
// proof-of-work, difficulty retargeting, the reward schedule, and full-chain
// validation.
package chain

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"time"

	"github.com/Ashok8601/mycoin/internal/canonjson"
)

// SystemCoinbase is the reserved sender address that mints new supply.
const SystemCoinbase = "SYSTEM_COINBASE"

const (
	InitialDifficulty  = 4
	GenesisProof       = 100
	GenesisPreviousHash = "1"

	RetargetInterval   = 2016
	TargetBlockSeconds = 600
	HalvingInterval    = 210000
	InitialReward      = 50.0
	minReward          = 1e-8
)

// Transaction is the wire shape of a single value transfer. It is immutable
// once constructed.
type Transaction struct {
	Sender    string  `json:"sender"`
	Recipient string  `json:"recipient"`
	Amount    float64 `json:"amount"`
	Signature string  `json:"signature"`
}

// Block is one link in the chain. Transactions[0] is always the coinbase.
type Block struct {
	Index        int           `json:"index"`
	Timestamp    int64         `json:"timestamp"`
	Transactions []Transaction `json:"transactions"`
	Proof        int           `json:"proof"`
	PreviousHash string        `json:"previous_hash"`
	Miner        string        `json:"miner"`
	Difficulty   int           `json:"difficulty"`
}

// NewGenesisBlock builds the fixed genesis block (index 1, previous_hash "1",
// proof 100, difficulty 4) with a single coinbase transaction to miner.
func NewGenesisBlock(miner string) *Block {
	reward := MiningReward(1)
	genesis := &Block{
		Index:        1,
		Timestamp:    time.Now().Unix(),
		Proof:        GenesisProof,
		PreviousHash: GenesisPreviousHash,
		Miner:        miner,
		Difficulty:   InitialDifficulty,
	}
	genesis.Transactions = []Transaction{{
		Sender:    SystemCoinbase,
		Recipient: miner,
		Amount:    reward,
	}}
	return genesis
}

// NewBlock builds a block at the given index with txs (expected to already
// have the coinbase prepended by the caller), stamped with the current time.
func NewBlock(index int, txs []Transaction, proof int, previousHash, miner string, difficulty int) *Block {
	return &Block{
		Index:        index,
		Timestamp:    time.Now().Unix(),
		Transactions: txs,
		Proof:        proof,
		PreviousHash: previousHash,
		Miner:        miner,
		Difficulty:   difficulty,
	}
}

// Hash returns the canonical SHA-256 hash of b, lowercase hex. Transactions
// are re-sorted by their own canonical bytes for hashing purposes only — the
// block's stored Transactions order is never mutated.
func Hash(b *Block) (string, error) {
	type keyedTx struct {
		tx  Transaction
		key string
	}
	keyed := make([]keyedTx, len(b.Transactions))
	for i, tx := range b.Transactions {
		encoded, err := canonjson.Marshal(tx)
		if err != nil {
			return "", err
		}
		keyed[i] = keyedTx{tx: tx, key: string(encoded)}
	}
	sort.Slice(keyed, func(i, j int) bool {
		return keyed[i].key < keyed[j].key
	})
	sortedTxs := make([]Transaction, len(keyed))
	for i, k := range keyed {
		sortedTxs[i] = k.tx
	}

	copyForHash := *b
	copyForHash.Transactions = sortedTxs

	encoded, err := canonjson.Marshal(copyForHash)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(encoded)
	return hex.EncodeToString(sum[:]), nil
}

// MiningReward implements the halving schedule: reward(index) = 50 / 2^(index
// div 210000), floored to exactly 0 below 1e-8.
func MiningReward(index int) float64 {
	halvings := index / HalvingInterval
	reward := InitialReward
	for i := 0; i < halvings; i++ {
		reward /= 2
	}
	if reward < minReward {
		return 0
	}
	return reward
}
