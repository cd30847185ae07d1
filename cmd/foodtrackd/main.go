// Package main is the entrypoint for the foodtrackd daemon.
package main

import "github.com/vladamisici/food-analyzer-sub001/cmd/foodtrackd/cli"

func main() {
	cli.Execute()
}
