package main

import (
	"os"

	"github.com/micro-tools/notebridge/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
