package main

import (
	"os"

	"github.com/jsvensson/lumen/internal/lsp"
)

var version = "dev"

func main() {
	s := lsp.NewServer(version)
	if err := s.Run(1); err != nil {
		os.Exit(1)
	}
}
