package main

import (
	"flag"
	"os"

	"github.com/brinedeck/wardroom/internal/platform/config"
	"github.com/brinedeck/wardroom/internal/tools/servicekey"
)

func main() {
	cfg, err := servicekey.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	if err := servicekey.Run(cfg, os.Stdout, nil); err != nil {
		config.Exitf("generate service key: %v", err)
	}
}
