package main

import "github.com/forPelevin/ytdigest/internal/cli"

func main() {
	cli.Main()
}
