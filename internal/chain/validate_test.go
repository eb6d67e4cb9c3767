package chain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mineNext(t *testing.T, prev *Block, difficulty int) *Block {
	t.Helper()
	proof, err := ProofOfWork(prev, difficulty)
	require.NoError(t, err)
	prevHash, err := Hash(prev)
	require.NoError(t, err)
	return NewBlock(prev.Index+1, []Transaction{
		{Sender: SystemCoinbase, Recipient: "miner-1", Amount: MiningReward(prev.Index + 1)},
	}, proof, prevHash, "miner-1", difficulty)
}

func TestValidateChainAcceptsAProperlyMinedChain(t *testing.T) {
	genesis := NewGenesisBlock("miner-1")
	// each proof must meet the predecessor's difficulty, which ValidateChain checks
	second := mineNext(t, genesis, genesis.Difficulty)
	third := mineNext(t, second, second.Difficulty)

	ok, reason := ValidateChain([]*Block{genesis, second, third})
	assert.True(t, ok, reason)
}

func TestValidateChainRejectsBrokenLink(t *testing.T) {
	genesis := NewGenesisBlock("miner-1")
	second := mineNext(t, genesis, 1)
	second.PreviousHash = "tampered"

	ok, _ := ValidateChain([]*Block{genesis, second})
	assert.False(t, ok)
}

func TestValidateChainRejectsInvalidProof(t *testing.T) {
	genesis := NewGenesisBlock("miner-1")
	second := mineNext(t, genesis, genesis.Difficulty)
	second.Proof = second.Proof + 1_000_000

	ok, _ := ValidateChain([]*Block{genesis, second})
	assert.False(t, ok)
}

func TestAdjustDifficultyNoopBeforeInterval(t *testing.T) {
	blocks := make([]*Block, RetargetInterval-1)
	assert.Equal(t, 4, AdjustDifficulty(blocks, 4))
}

func TestAdjustDifficultyIncreasesWhenBlocksCameFast(t *testing.T) {
	blocks := make([]*Block, RetargetInterval)
	for i := range blocks {
		blocks[i] = &Block{Timestamp: int64(i)} // far faster than TargetBlockSeconds apart
	}
	assert.Equal(t, 5, AdjustDifficulty(blocks, 4))
}

func TestAdjustDifficultyDecreasesButFloorsAtOne(t *testing.T) {
	blocks := make([]*Block, RetargetInterval)
	for i := range blocks {
		blocks[i] = &Block{Timestamp: int64(i) * 10000} // far slower than expected
	}
	assert.Equal(t, 1, AdjustDifficulty(blocks, 1), "difficulty never drops below 1")
}
