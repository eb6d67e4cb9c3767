// Package api is the HTTP transport and JSON envelope that exposes the node
// façade to peers and wallet clients. It is a thin shell: every handler just
// translates a request into a node.Node call and the result into the
// documented JSON response.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Ashok8601/mycoin/internal/chain"
	"github.com/Ashok8601/mycoin/internal/mylog"
	"github.com/Ashok8601/mycoin/internal/node"
)

// Server wires a node.Node to an HTTP mux.
type Server struct {
	Node     *node.Node
	SelfAddr string
	router   *mux.Router
}

// NewServer builds a Server with all routes registered.
func NewServer(n *node.Node, selfAddr string) *Server {
	s := &Server{Node: n, SelfAddr: selfAddr, router: mux.NewRouter()}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() {
	s.router.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	s.router.HandleFunc("/mine", s.handleMine).Methods(http.MethodGet)
	s.router.HandleFunc("/transactions/new", s.handleNewTransaction).Methods(http.MethodPost)
	s.router.HandleFunc("/chain", s.handleChain).Methods(http.MethodGet)
	s.router.HandleFunc("/balance/{address}", s.handleBalance).Methods(http.MethodGet)
	s.router.HandleFunc("/blocks/new", s.handleNewBlock).Methods(http.MethodPost)
	s.router.HandleFunc("/nodes/register", s.handleRegisterNodes).Methods(http.MethodPost)
	s.router.HandleFunc("/nodes/get", s.handleGetNodes).Methods(http.MethodGet)
	s.router.HandleFunc("/nodes/resolve", s.handleResolve).Methods(http.MethodGet)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		mylog.Log.WithError(err).Error("api: failed to encode response")
	}
}

// handleIndex is a minimal placeholder for the browser-facing UI; the wallet
// CLI and the JSON routes below are the primary interface.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, "<html><body><h1>mycoin node</h1><p>node address: %s</p></body></html>", s.SelfAddr)
}

func (s *Server) handleMine(w http.ResponseWriter, r *http.Request) {
	block, err := s.Node.Mine(s.SelfAddr)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": err.Error()})
		return
	}

	reward := 0.0
	if len(block.Transactions) > 0 {
		reward = block.Transactions[0].Amount
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":       "new block forged and broadcast to the network",
		"index":         block.Index,
		"transactions":  block.Transactions,
		"proof":         block.Proof,
		"previous_hash": block.PreviousHash,
		"reward":        reward,
	})
}

type newTransactionRequest struct {
	Sender    string   `json:"sender"`
	Recipient string   `json:"recipient"`
	Amount    *float64 `json:"amount"`
	Signature string   `json:"signature"`
}

func (s *Server) handleNewTransaction(w http.ResponseWriter, r *http.Request) {
	var req newTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "malformed request body"})
		return
	}
	if req.Sender == "" || req.Recipient == "" || req.Amount == nil || req.Signature == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"message": "missing required values: sender, recipient, amount, signature",
		})
		return
	}

	tx := chain.Transaction{
		Sender:    req.Sender,
		Recipient: req.Recipient,
		Amount:    *req.Amount,
		Signature: req.Signature,
	}

	_, message := s.Node.SubmitTransaction(tx)
	if message != "transaction added to pool" {
		writeJSON(w, http.StatusNotAcceptable, map[string]string{"message": message})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"message": "transaction added to pool and broadcast to the network"})
}

func (s *Server) handleChain(w http.ResponseWriter, r *http.Request) {
	view := s.Node.GetChain()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"chain":      view.Chain,
		"length":     view.Length,
		"difficulty": view.Difficulty,
	})
}

func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	address := mux.Vars(r)["address"]
	balance := s.Node.GetBalance(address)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"address": address,
		"balance": balance,
		"message": "balance retrieved successfully",
	})
}

type newBlockRequest struct {
	Block *chain.Block `json:"block"`
}

func (s *Server) handleNewBlock(w http.ResponseWriter, r *http.Request) {
	var req newBlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Block == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "missing block data"})
		return
	}

	replaced := s.Node.ReceiveBlock()
	if replaced {
		writeJSON(w, http.StatusOK, map[string]string{"message": "new block received, chain updated via consensus"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "new block received, local chain is authoritative"})
}

type registerNodesRequest struct {
	Nodes []string `json:"nodes"`
}

func (s *Server) handleRegisterNodes(w http.ResponseWriter, r *http.Request) {
	var req registerNodesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Nodes == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "please supply a valid list of nodes"})
		return
	}

	peers, err := s.Node.RegisterPeers(req.Nodes)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message":     "new nodes have been added",
		"total_nodes": len(peers),
	})
}

func (s *Server) handleGetNodes(w http.ResponseWriter, r *http.Request) {
	peers := s.Node.LoadForGossip()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "current network nodes",
		"nodes":   peers,
		"count":   len(peers),
	})
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	replaced := s.Node.Resolve()
	view := s.Node.GetChain()

	if replaced {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"message":   "our chain was replaced by the longest, valid chain",
			"new_chain": view.Chain,
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "our chain is authoritative",
		"chain":   view.Chain,
	})
}
