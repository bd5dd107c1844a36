package main

import "zerowaste/internal/cli"

func main() {
	cli.Execute()
}
