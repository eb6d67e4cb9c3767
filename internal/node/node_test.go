package node

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ashok8601/mycoin/internal/chain"
	"github.com/Ashok8601/mycoin/internal/cryptoutil"
	"github.com/Ashok8601/mycoin/internal/store"
)

func chainTransaction(sender, recipient string, amount float64, signature string) chain.Transaction {
	return chain.Transaction{Sender: sender, Recipient: recipient, Amount: amount, Signature: signature}
}

func newTestNode(t *testing.T, selfAddress string) *Node {
	t.Helper()
	st := store.New(filepath.Join(t.TempDir(), "chain.json"))
	n, err := New(selfAddress, "localhost:0", st)
	require.NoError(t, err)
	return n
}

func TestMineGrantsRewardToMiner(t *testing.T) {
	n := newTestNode(t, "miner-1")

	block, err := n.Mine("miner-1")
	require.NoError(t, err)
	assert.Equal(t, 2, block.Index)
	// miner-1 also bootstrapped the node, so it holds the genesis coinbase too.
	assert.Equal(t, 100.0, n.GetBalance("miner-1"))
}

func TestSubmitTransactionThenMineSettlesBalances(t *testing.T) {
	n := newTestNode(t, "miner-1")
	_, err := n.Mine("miner-1") // gives miner-1 a spendable balance
	require.NoError(t, err)

	wallet, err := cryptoutil.NewWallet()
	require.NoError(t, err)

	// fund the new wallet first
	_, err = n.Mine(wallet.Address)
	require.NoError(t, err)

	sig, err := cryptoutil.Sign(wallet.PrivateKey, wallet.Address, "bob", 10)
	require.NoError(t, err)

	idx, message := n.SubmitTransaction(chainTransaction(wallet.Address, "bob", 10, sig))
	require.NotNil(t, idx)
	assert.Equal(t, "transaction added to pool", message)

	_, err = n.Mine(wallet.Address)
	require.NoError(t, err)

	assert.Equal(t, 10.0, n.GetBalance("bob"))
}

func TestSubmitTransactionRejectsBadSignature(t *testing.T) {
	n := newTestNode(t, "miner-1")
	wallet, err := cryptoutil.NewWallet()
	require.NoError(t, err)

	idx, message := n.SubmitTransaction(chainTransaction(wallet.Address, "bob", 10, "not-a-real-signature"))
	assert.Nil(t, idx)
	assert.Contains(t, message, "invalid digital signature")
}

func TestRegisterPeersDedupesAndExcludesSelf(t *testing.T) {
	n := newTestNode(t, "miner-1")
	peers, err := n.RegisterPeers([]string{"http://localhost:9001", "localhost:9001", "localhost:0"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"localhost:9001"}, peers)
}

func TestResolveWithNoPeersIsANoop(t *testing.T) {
	n := newTestNode(t, "miner-1")
	assert.False(t, n.Resolve())
}
