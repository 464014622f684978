package main

import (
	"github.com/anchoredit/anchoredit/internal/cli"
)

func main() {
	cli.Execute()
}
