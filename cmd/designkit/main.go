// Designkit - A colour and design-system toolkit
//
// Designkit checks colours for accessibility and drafts design systems
// (palette, fonts, copy and typography) for a service, platform and mood.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import (
	"os"

	"github.com/jmylchreest/designkit/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
