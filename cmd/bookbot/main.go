package main

import "bookbot/internal/cli"

func main() {
	cli.Execute()
}
