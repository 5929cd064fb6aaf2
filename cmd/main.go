package main

import (
	"github.com/szto/foxy-reminder/internal/cli"
)

func main() {
	cli.Execute()
}
