package main

import "github.com/mcoot/teamdraft/internal/cli"

func main() {
	cli.Execute()
}
