package main

import "github.com/andrescamacho/sanctuary-go/internal/adapters/cli"

func main() {
	cli.Execute()
}
