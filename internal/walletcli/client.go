// Package walletcli is an interactive command-line wallet: generate or load
// a keypair, check a balance, sign and send a transaction, and view the
// chain, all via a mycoind node's HTTP API.
package walletcli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

// NodeAPIClient is a thin HTTP client for a mycoind node's API.
type NodeAPIClient struct {
	BaseURL string
	http    *http.Client
}

func NewNodeAPIClient(baseURL string) *NodeAPIClient {
	return &NodeAPIClient{BaseURL: baseURL, http: &http.Client{}}
}

func (c *NodeAPIClient) GetBalance(address string) (float64, error) {
	resp, err := c.http.Get(fmt.Sprintf("%s/balance/%s", c.BaseURL, address))
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	var result struct {
		Balance float64 `json:"balance"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, err
	}
	return result.Balance, nil
}

// SendTransaction posts an already-signed transaction to the node.
func (c *NodeAPIClient) SendTransaction(sender, recipient, signature string, amount float64) (string, error) {
	body := map[string]interface{}{
		"sender":    sender,
		"recipient": recipient,
		"amount":    amount,
		"signature": signature,
	}
	data, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	resp, err := c.http.Post(c.BaseURL+"/transactions/new", "application/json", bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var result struct {
		Message string `json:"message"`
	}
	json.NewDecoder(resp.Body).Decode(&result)
	if resp.StatusCode != http.StatusCreated {
		return result.Message, fmt.Errorf("walletcli: node rejected transaction: %s", result.Message)
	}
	return result.Message, nil
}

// GetChain fetches the node's current chain.
func (c *NodeAPIClient) GetChain() (json.RawMessage, error) {
	resp, err := c.http.Get(c.BaseURL + "/chain")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result struct {
		Chain json.RawMessage `json:"chain"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return result.Chain, nil
}
