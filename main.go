// Package main is the entry point for the multitracks application.
package main

import (
	"github.com/multitracks/multitracks/cmd"
	"github.com/multitracks/multitracks/config"
	"github.com/multitracks/multitracks/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	go cmd.CollectGarbage()

	cmd.Execute()
}
