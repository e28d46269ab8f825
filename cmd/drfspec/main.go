package main

import "drfspec/internal/cli"

func main() {
	cli.Execute()
}
