package main

import "multibank-ledger/cmd"

func main() {
	cmd.Execute()
}
