// Command mycoin-wallet is an interactive CLI wallet that talks to a running
// mycoind node over HTTP.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Ashok8601/mycoin/internal/mylog"
	"github.com/Ashok8601/mycoin/internal/walletcli"
)

func main() {
	var nodeURL string
	var walletPath string

	root := &cobra.Command{
		Use:   "mycoin-wallet",
		Short: "Interactive wallet CLI for a mycoin node",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := walletcli.NewNodeAPIClient(nodeURL)
			cli, err := walletcli.New(client, walletPath)
			if err != nil {
				return err
			}
			cli.Run()
			return nil
		},
	}

	root.Flags().StringVar(&nodeURL, "node", "http://localhost:5000", "base URL of the mycoind node to talk to")
	root.Flags().StringVar(&walletPath, "wallet", "wallet_data/wallet.pem", "path to this wallet's persisted key file")

	if err := root.Execute(); err != nil {
		mylog.Log.WithError(err).Fatal("mycoin-wallet: fatal error")
	}
	os.Exit(0)
}
