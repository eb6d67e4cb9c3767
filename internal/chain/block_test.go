package chain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashIsStableUnderTransactionOrder(t *testing.T) {
	a := &Block{
		Index:        2,
		Timestamp:    1000,
		PreviousHash: "abc",
		Miner:        "m",
		Difficulty:   4,
		Transactions: []Transaction{
			{Sender: "alice", Recipient: "bob", Amount: 1},
			{Sender: "bob", Recipient: "carol", Amount: 2},
		},
	}
	b := &Block{
		Index:        2,
		Timestamp:    1000,
		PreviousHash: "abc",
		Miner:        "m",
		Difficulty:   4,
		Transactions: []Transaction{
			{Sender: "bob", Recipient: "carol", Amount: 2},
			{Sender: "alice", Recipient: "bob", Amount: 1},
		},
	}

	hashA, err := Hash(a)
	require.NoError(t, err)
	hashB, err := Hash(b)
	require.NoError(t, err)

	assert.Equal(t, hashA, hashB, "hash must not depend on in-memory transaction order")
	assert.Len(t, a.Transactions, 2, "Hash must not mutate the block's stored transaction order")
	assert.Equal(t, "alice", a.Transactions[0].Sender)
}

func TestHashChangesWithContent(t *testing.T) {
	base := &Block{Index: 1, PreviousHash: "1", Proof: 100, Difficulty: 4}
	changed := *base
	changed.Proof = 101

	h1, err := Hash(base)
	require.NoError(t, err)
	h2, err := Hash(&changed)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

func TestMiningRewardHalvingSchedule(t *testing.T) {
	assert.Equal(t, 50.0, MiningReward(1))
	assert.Equal(t, 25.0, MiningReward(HalvingInterval))
	assert.Equal(t, 25.0, MiningReward(HalvingInterval+1))
	assert.Equal(t, 12.5, MiningReward(2*HalvingInterval+1))
}

func TestMiningRewardFloorsToZero(t *testing.T) {
	// After enough halvings the reward drops below the minimum representable
	// unit and must floor to exactly zero, not some positive epsilon.
	farFuture := 64 * HalvingInterval
	assert.Equal(t, 0.0, MiningReward(farFuture))
}

func TestNewGenesisBlockFixedFields(t *testing.T) {
	g := NewGenesisBlock("miner-1")
	assert.Equal(t, 1, g.Index)
	assert.Equal(t, GenesisPreviousHash, g.PreviousHash)
	assert.Equal(t, GenesisProof, g.Proof)
	assert.Equal(t, InitialDifficulty, g.Difficulty)
	require.Len(t, g.Transactions, 1)
	assert.Equal(t, SystemCoinbase, g.Transactions[0].Sender)
	assert.Equal(t, "miner-1", g.Transactions[0].Recipient)
	assert.Equal(t, 50.0, g.Transactions[0].Amount)
}
