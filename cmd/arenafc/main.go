package main

import "github.com/mcoot/arenafc/internal/cli"

func main() {
	cli.Execute()
}
