package main

import (
	"github.com/PauPin2013/Connect4/internal/cli"
)

func main() {
	cli.Execute()
}
