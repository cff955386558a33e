package main

import "github.com/dmitrymomot/ibankit/internal/cli"

func main() {
	cli.Execute()
}
