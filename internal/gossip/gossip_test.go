package gossip

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ashok8601/mycoin/internal/chain"
)

func TestPeerURLPrependsSchemeOnlyWhenMissing(t *testing.T) {
	assert.Equal(t, "http://localhost:5001/chain", peerURL("localhost:5001", "/chain"))
	assert.Equal(t, "http://localhost:5001/chain", peerURL("http://localhost:5001", "/chain"))
	assert.Equal(t, "https://localhost:5001/chain", peerURL("https://localhost:5001", "/chain"))
}

type fakePeers struct{ urls []string }

func (f fakePeers) LoadForGossip() []string { return f.urls }

func TestBroadcastBlockSkipsUnreachablePeersAndCountsSuccesses(t *testing.T) {
	received := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received++
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	peers := fakePeers{urls: []string{strings.TrimPrefix(srv.URL, "http://"), "127.0.0.1:1"}}
	block := chain.NewGenesisBlock("miner-1")

	successes := BroadcastBlock(peers, block)
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, received)
}

func TestResolveConflictsAdoptsStrictlyLongerValidChain(t *testing.T) {
	genesis := chain.NewGenesisBlock("miner-1")
	proof, err := chain.ProofOfWork(genesis, genesis.Difficulty)
	require.NoError(t, err)
	prevHash, err := chain.Hash(genesis)
	require.NoError(t, err)
	second := chain.NewBlock(2, []chain.Transaction{
		{Sender: chain.SystemCoinbase, Recipient: "miner-1", Amount: chain.MiningReward(2)},
	}, proof, prevHash, "miner-1", 1)

	longer := []*chain.Block{genesis, second}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(chainResponse{Chain: longer, Length: len(longer), Difficulty: 1})
	}))
	defer srv.Close()

	local := []*chain.Block{genesis}
	candidate, replaced := ResolveConflicts([]string{strings.TrimPrefix(srv.URL, "http://")}, local)
	require.True(t, replaced)
	assert.Len(t, candidate, 2)
}

func TestResolveConflictsKeepsLocalOnTie(t *testing.T) {
	genesis := chain.NewGenesisBlock("miner-1")
	local := []*chain.Block{genesis}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(chainResponse{Chain: local, Length: len(local), Difficulty: 4})
	}))
	defer srv.Close()

	_, replaced := ResolveConflicts([]string{strings.TrimPrefix(srv.URL, "http://")}, local)
	assert.False(t, replaced, "a same-length candidate must never replace the local chain")
}
