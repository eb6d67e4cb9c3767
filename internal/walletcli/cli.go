package walletcli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Ashok8601/mycoin/internal/cryptoutil"
	"github.com/Ashok8601/mycoin/internal/mylog"
)

// CLI is the interactive wallet loop.
type CLI struct {
	API    *NodeAPIClient
	Wallet *cryptoutil.Wallet
	reader *bufio.Reader
}

// New loads a wallet from walletPath, generating and persisting a new one on
// first run so the address stays stable across runs.
func New(api *NodeAPIClient, walletPath string) (*CLI, error) {
	wallet, err := loadOrCreateWallet(walletPath)
	if err != nil {
		return nil, err
	}
	return &CLI{API: api, Wallet: wallet, reader: bufio.NewReader(os.Stdin)}, nil
}

func loadOrCreateWallet(path string) (*cryptoutil.Wallet, error) {
	if _, err := os.Stat(path); err == nil {
		return cryptoutil.LoadWallet(path)
	}

	wallet, err := cryptoutil.NewWallet()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	if err := wallet.SaveToFile(path); err != nil {
		return nil, err
	}
	return wallet, nil
}

// Run presents the interactive menu until the user exits.
func (cli *CLI) Run() {
	fmt.Printf("wallet address: %s\n", cli.Wallet.Address)
	for {
		fmt.Println("1. Check Balance")
		fmt.Println("2. Send Transaction")
		fmt.Println("3. View Blockchain")
		fmt.Println("4. Exit")
		fmt.Print("Enter choice: ")

		choice := cli.readLine()
		switch choice {
		case "1":
			cli.handleCheckBalance()
		case "2":
			cli.handleSendTransaction()
		case "3":
			cli.handleViewChain()
		case "4":
			return
		default:
			fmt.Println("invalid choice")
		}
	}
}

func (cli *CLI) readLine() string {
	line, _ := cli.reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func (cli *CLI) handleCheckBalance() {
	fmt.Print("enter address (blank for your own): ")
	address := cli.readLine()
	if address == "" {
		address = cli.Wallet.Address
	}

	balance, err := cli.API.GetBalance(address)
	if err != nil {
		mylog.Log.WithError(err).Error("walletcli: failed to get balance")
		return
	}
	fmt.Printf("balance of %s: %v\n", address, balance)
}

func (cli *CLI) handleSendTransaction() {
	fmt.Print("enter recipient address: ")
	recipient := cli.readLine()

	fmt.Print("enter amount: ")
	amountStr := cli.readLine()
	amount, err := strconv.ParseFloat(amountStr, 64)
	if err != nil {
		fmt.Println("invalid amount")
		return
	}

	signature, err := cryptoutil.Sign(cli.Wallet.PrivateKey, cli.Wallet.Address, recipient, amount)
	if err != nil {
		mylog.Log.WithError(err).Error("walletcli: failed to sign transaction")
		return
	}

	message, err := cli.API.SendTransaction(cli.Wallet.Address, recipient, signature, amount)
	if err != nil {
		fmt.Println("transaction rejected:", message)
		return
	}
	fmt.Println(message)
}

func (cli *CLI) handleViewChain() {
	chain, err := cli.API.GetChain()
	if err != nil {
		mylog.Log.WithError(err).Error("walletcli: failed to fetch chain")
		return
	}
	fmt.Println(string(chain))
}
