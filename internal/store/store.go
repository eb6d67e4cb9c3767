// Package store persists the node's {chain, difficulty, nodes} document to the
// local filesystem.
package store

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/Ashok8601/mycoin/internal/chain"
)

// DefaultPath is where the node's state document lives by default.
const DefaultPath = "data/blockchain.json"

// Document is the exact on-disk layout.
type Document struct {
	Chain      []*chain.Block `json:"chain"`
	Difficulty int            `json:"difficulty"`
	Nodes      []string       `json:"nodes"`
}

// Store reads and writes one Document at Path.
type Store struct {
	Path string
}

func New(path string) *Store {
	if path == "" {
		path = DefaultPath
	}
	return &Store{Path: path}
}

// Save writes doc to disk by writing a temp file in the same directory and
// renaming it over Path, so a concurrent reader never observes a torn write.
func (s *Store) Save(doc Document) error {
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".blockchain-*.json.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, s.Path)
}

// Load reads the document from disk. A missing or corrupt file is treated as
// empty: no chain, initial difficulty, no peers.
func (s *Store) Load() (Document, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return Document{Difficulty: chain.InitialDifficulty}, nil
		}
		return Document{Difficulty: chain.InitialDifficulty}, nil
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{Difficulty: chain.InitialDifficulty}, nil
	}
	if doc.Difficulty == 0 {
		doc.Difficulty = chain.InitialDifficulty
	}
	return doc, nil
}

// LoadForGossip is a lightweight re-read used by gossip to get the freshest
// peer set without disturbing in-memory chain state.
func (s *Store) LoadForGossip() []string {
	doc, err := s.Load()
	if err != nil {
		return nil
	}
	return doc.Nodes
}
