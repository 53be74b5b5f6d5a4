package main

import (
	"os"

	"go_dateparse/cli"
)

func main() {
	if err := cli.Execute(os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}
