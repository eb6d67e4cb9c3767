package chain

import "fmt"

// ValidateChain verifies every block's previous-hash link and PoW proof.
// Transaction signatures are intentionally not re-checked here — only hash
// continuity and proof-of-work are re-derived.
func ValidateChain(blocks []*Block) (bool, string) {
	for i := 1; i < len(blocks); i++ {
		prev := blocks[i-1]
		cur := blocks[i]

		prevHash, err := Hash(prev)
		if err != nil {
			return false, fmt.Sprintf("block %d: failed to hash predecessor: %v", cur.Index, err)
		}
		if cur.PreviousHash != prevHash {
			return false, fmt.Sprintf("block %d has invalid previous hash", cur.Index)
		}

		prevDifficulty := prev.Difficulty
		if prevDifficulty == 0 {
			prevDifficulty = InitialDifficulty
		}
		if !ValidProof(cur.PreviousHash, cur.Proof, prevDifficulty) {
			return false, fmt.Sprintf("block %d has invalid proof", cur.Index)
		}
	}
	return true, "chain is valid"
}

// AdjustDifficulty retargets every RetargetInterval blocks, windowed over the
// last RetargetInterval blocks' timestamps. Call only when
// len(blocks)%RetargetInterval == 0. The floor on difficulty is 1; there is no
// upper clamp.
func AdjustDifficulty(blocks []*Block, currentDifficulty int) int {
	if len(blocks) < RetargetInterval {
		return currentDifficulty
	}
	first := blocks[len(blocks)-RetargetInterval]
	last := blocks[len(blocks)-1]

	expected := float64(RetargetInterval * TargetBlockSeconds)
	actual := float64(last.Timestamp - first.Timestamp)

	switch {
	case actual < expected*0.75:
		return currentDifficulty + 1
	case actual > expected*1.25:
		if currentDifficulty > 1 {
			return currentDifficulty - 1
		}
		return currentDifficulty
	default:
		return currentDifficulty
	}
}
