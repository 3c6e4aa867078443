package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"multibank-ledger/app"
)

var (
	clientBank     string
	clientName     string
	clientSurname  string
	clientAddress  string
	clientPassport string
)

var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "Manage bank clients",
}

var clientAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a client with a bank",
	Long: `Registers a client. A client without both --address and --passport is
marked suspicious and stays suspicious even if the data is supplied later.`,
	Run: func(cmd *cobra.Command, args []string) {
		client, err := ledgerService.AddClient(app.AddClientCommand{
			Bank:           clientBank,
			Name:           clientName,
			Surname:        clientSurname,
			Address:        clientAddress,
			PassportNumber: clientPassport,
		})
		if err != nil {
			exitWithError(err)
			return
		}
		fmt.Printf("Client '%s' added (ID: %s, suspicious: %t).\n", client, client.ID, client.IsSuspicious())
	},
}

var clientListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the clients of a bank",
	Run: func(cmd *cobra.Command, args []string) {
		bank, err := ledgerService.Bank(clientBank)
		if err != nil {
			exitWithError(err)
			return
		}
		clients := bank.Clients()
		if len(clients) == 0 {
			fmt.Printf("Bank '%s' has no clients.\n", bank.Name)
			return
		}
		for _, c := range clients {
			fmt.Printf("  %s  %-24s suspicious=%t\n", c.ID, c.String(), c.IsSuspicious())
		}
	},
}

func init() {
	rootCmd.AddCommand(clientCmd)
	clientCmd.AddCommand(clientAddCmd, clientListCmd)

	clientAddCmd.Flags().StringVar(&clientBank, "bank", "", "Bank ID or name (required)")
	clientAddCmd.Flags().StringVar(&clientName, "name", "", "First name (required)")
	clientAddCmd.Flags().StringVar(&clientSurname, "surname", "", "Surname (required)")
	clientAddCmd.Flags().StringVar(&clientAddress, "address", "", "Postal address")
	clientAddCmd.Flags().StringVar(&clientPassport, "passport", "", "Passport number")
	_ = clientAddCmd.MarkFlagRequired("bank")
	_ = clientAddCmd.MarkFlagRequired("name")
	_ = clientAddCmd.MarkFlagRequired("surname")

	clientListCmd.Flags().StringVar(&clientBank, "bank", "", "Bank ID or name (required)")
	_ = clientListCmd.MarkFlagRequired("bank")
}
