package main

import "splitpot/internal/cli"

func main() {
	cli.Execute()
}
