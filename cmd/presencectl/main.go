package main

import "presence/internal/cli"

func main() {
	cli.Execute()
}
