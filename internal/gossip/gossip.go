// Package gossip fans blocks and transactions out to peers and runs the
// longest-valid-chain conflict resolution procedure.
package gossip

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Ashok8601/mycoin/internal/chain"
	"github.com/Ashok8601/mycoin/internal/mylog"
)

const (
	txBroadcastTimeout    = 2 * time.Second
	blockBroadcastTimeout = 3 * time.Second
	chainFetchTimeout     = 5 * time.Second
)

// PeerSource supplies the effective peer set at gossip time. The node façade
// satisfies this with its persistence store's LoadForGossip, so the set
// visible to gossip is the latest persisted one even across transport workers
// that share only the disk.
type PeerSource interface {
	LoadForGossip() []string
}

func peerURL(peer, path string) string {
	if len(peer) >= 7 && peer[:7] == "http://" {
		return peer + path
	}
	if len(peer) >= 8 && peer[:8] == "https://" {
		return peer + path
	}
	return "http://" + peer + path
}

// blockEnvelope is the POST /blocks/new request body.
type blockEnvelope struct {
	Block *chain.Block `json:"block"`
}

// chainResponse is the GET /chain response body.
type chainResponse struct {
	Chain      []*chain.Block `json:"chain"`
	Length     int            `json:"length"`
	Difficulty int            `json:"difficulty"`
}

func postJSON(client *http.Client, url string, body interface{}) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return err
	}
	resp, err := client.Post(url, "application/json", bytes.NewReader(encoded))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errStatus(resp.StatusCode)
	}
	return nil
}

type errStatus int

func (e errStatus) Error() string {
	return "gossip: unexpected status " + httpStatusText(int(e))
}

func httpStatusText(code int) string {
	return http.StatusText(code)
}

// BroadcastBlock re-reads the peer set from disk, then POSTs block to each
// peer's /blocks/new with a short timeout. Peer errors are logged and
// skipped; they never fail the mine. Returns the number of peers that
// accepted it.
func BroadcastBlock(peers PeerSource, block *chain.Block) int {
	client := &http.Client{Timeout: blockBroadcastTimeout}
	successes := 0
	for _, peer := range peers.LoadForGossip() {
		url := peerURL(peer, "/blocks/new")
		if err := postJSON(client, url, blockEnvelope{Block: block}); err != nil {
			mylog.Log.WithField("peer", peer).WithError(err).Warn("gossip: block broadcast failed")
			continue
		}
		successes++
	}
	return successes
}

// BroadcastTransaction is BroadcastBlock's counterpart for pending
// transactions, with a shorter timeout.
func BroadcastTransaction(peers PeerSource, tx chain.Transaction) int {
	client := &http.Client{Timeout: txBroadcastTimeout}
	successes := 0
	for _, peer := range peers.LoadForGossip() {
		url := peerURL(peer, "/transactions/new")
		if err := postJSON(client, url, tx); err != nil {
			mylog.Log.WithField("peer", peer).WithError(err).Warn("gossip: transaction broadcast failed")
			continue
		}
		successes++
	}
	return successes
}

// ResolveConflicts implements the longest-valid-chain rule: it asks every
// peer for its chain and adopts the strictly-longest one that passes full
// validation. Ties favor the local chain. It returns the winning chain and
// true only when a strictly longer, valid candidate was found.
func ResolveConflicts(peers []string, localChain []*chain.Block) ([]*chain.Block, bool) {
	client := &http.Client{Timeout: chainFetchTimeout}
	best := len(localChain)
	var candidate []*chain.Block

	for _, peer := range peers {
		url := peerURL(peer, "/chain")
		resp, err := client.Get(url)
		if err != nil {
			mylog.Log.WithField("peer", peer).WithError(err).Debug("gossip: chain fetch failed, skipping")
			continue
		}

		var parsed chainResponse
		err = json.NewDecoder(resp.Body).Decode(&parsed)
		resp.Body.Close()
		if err != nil {
			mylog.Log.WithField("peer", peer).WithError(err).Warn("gossip: malformed chain response, skipping")
			continue
		}

		if parsed.Length > best {
			if ok, reason := chain.ValidateChain(parsed.Chain); ok {
				best = parsed.Length
				candidate = parsed.Chain
			} else {
				mylog.Log.WithField("peer", peer).WithField("reason", reason).Warn("gossip: peer offered an invalid chain")
			}
		}
	}

	if candidate != nil {
		return candidate, true
	}
	return nil, false
}
