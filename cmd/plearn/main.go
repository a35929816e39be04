package main

import (
	"os"

	"plearn/backend/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:], cli.NewConfig()))
}
