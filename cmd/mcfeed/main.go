package main

import (
	"github.com/lagcraft/statusboard/internal/cli"
)

func main() {
	cli.Execute()
}
