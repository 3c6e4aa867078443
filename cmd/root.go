package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"multibank-ledger/app"
	"multibank-ledger/config"
	"multibank-ledger/domain"
	"multibank-ledger/logging"
	"multibank-ledger/store"
)

var (
	// Shared application service instance, built on first command.
	ledgerService *app.LedgerService
	logger        *zap.Logger

	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "ledger-cli",
	Short: "A CLI for the multi-bank ledger",
	Long: `ledger-cli manages banks, clients and accounts and moves money between
them through the transaction engine.

State lives in memory for the life of the process; use "repl" to run several
commands against the same ledger, or --config to preload banks from YAML.`,
	SilenceUsage:      true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return setup() },
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	defer func() {
		if logger != nil {
			_ = logger.Sync()
		}
	}()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML file with banks to preload")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default info, or logLevel from --config)")
	rootCmd.AddCommand(replCmd)
}

func setup() error {
	if ledgerService != nil {
		return nil
	}

	var cfg *config.Config
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	} else {
		cfg = &config.Config{}
	}

	level := logLevel
	if level == "" {
		level = cfg.LogLevel
	}
	l, err := logging.New(level)
	if err != nil {
		return err
	}
	logger = l

	bankConfigs, err := cfg.BankConfigs()
	if err != nil {
		return err
	}

	ledgerService = app.NewLedgerService(
		domain.NewBankManager(),
		store.NewInMemoryEventStore(),
		store.NewInMemorySnapshotStore(),
		logger,
	)
	for _, bc := range bankConfigs {
		if _, err := ledgerService.CreateBank(app.CreateBankCommand{Config: bc}); err != nil {
			return err
		}
	}
	return nil
}

// Helper function to print errors. In REPL mode the loop keeps going.
func exitWithError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive REPL session",
	Long:  `Starts an interactive Read-Eval-Print Loop session against a single in-memory ledger.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Starting ledger CLI REPL. Type 'exit' or 'quit' to exit.")

		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print("> ")
			if !scanner.Scan() {
				break
			}
			input := strings.TrimSpace(scanner.Text())

			if input == "exit" || input == "quit" {
				break
			}
			if input == "" {
				continue
			}

			commandArgs := strings.Fields(input)
			if commandArgs[0] == "repl" {
				fmt.Println("Already in a REPL session.")
				continue
			}

			resetFlags()
			rootCmd.SetArgs(commandArgs)
			// Errors are already printed by the commands themselves.
			_ = rootCmd.Execute()
		}

		rootCmd.SetArgs(nil)
		fmt.Println("Exiting REPL.")
	},
}

// resetFlags restores every subcommand flag to its default so values from a
// previous REPL line do not leak into the next one.
func resetFlags() {
	var walk func(c *cobra.Command)
	walk = func(c *cobra.Command) {
		c.LocalNonPersistentFlags().VisitAll(func(f *pflag.Flag) {
			if f.Changed {
				_ = f.Value.Set(f.DefValue)
				f.Changed = false
			}
		})
		for _, child := range c.Commands() {
			walk(child)
		}
	}
	for _, c := range rootCmd.Commands() {
		walk(c)
	}
}
