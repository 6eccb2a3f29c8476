package main

import "github.com/user/watchstore/internal/cli"

func main() {
	cli.Execute()
}
