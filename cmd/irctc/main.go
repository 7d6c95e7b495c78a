package main

import "github.com/Subby575/irctc/internal/cli"

func main() {
	cli.Execute()
}
