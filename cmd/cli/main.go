package main

import "storage-valuation/internal/cli"

func main() {
	cli.Execute()
}
