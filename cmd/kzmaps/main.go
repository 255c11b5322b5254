package main

import "github.com/pfrederiksen/kzmaps/internal/cli"

func main() {
	cli.Execute()
}
