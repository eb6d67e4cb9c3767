// Command mycoind runs a single mycoin node: the chain engine, mempool,
// gossip, and the HTTP API that exposes them to peers and wallets.
package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Ashok8601/mycoin/internal/api"
	"github.com/Ashok8601/mycoin/internal/mylog"
	"github.com/Ashok8601/mycoin/internal/node"
	"github.com/Ashok8601/mycoin/internal/store"
)

func main() {
	var port string
	var connect string
	var dataPath string

	root := &cobra.Command{
		Use:   "mycoind",
		Short: "Run a mycoin node",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(port, connect, dataPath)
		},
	}

	root.Flags().StringVar(&port, "port", envOr("PORT", "5000"), "port this node listens on")
	root.Flags().StringVar(&connect, "connect", os.Getenv("CONNECT_NODE"), "peer to register and resolve against on startup")
	root.Flags().StringVar(&dataPath, "data", store.DefaultPath, "path to the persisted chain document")

	if err := root.Execute(); err != nil {
		mylog.Log.WithError(err).Fatal("mycoind: fatal error")
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func run(port, connect, dataPath string) error {
	nodeID := uuid.New().String()
	selfHostPort := "localhost:" + port
	selfAddress := "node-" + nodeID

	mylog.Log.WithFields(map[string]interface{}{
		"node_id": nodeID,
		"port":    port,
	}).Info("mycoind: starting")

	st := store.New(dataPath)
	n, err := node.New(selfAddress, selfHostPort, st)
	if err != nil {
		return fmt.Errorf("mycoind: failed to initialize node: %w", err)
	}

	if connect != "" {
		if _, err := n.RegisterPeers([]string{connect}); err != nil {
			mylog.Log.WithError(err).WithField("peer", connect).Warn("mycoind: failed to register startup peer")
		} else {
			n.Resolve()
		}
	}

	srv := api.NewServer(n, selfAddress)
	addr := ":" + port
	mylog.Log.WithField("addr", addr).Info("mycoind: serving")
	return http.ListenAndServe(addr, srv.Handler())
}
