// Package main is the entry point for toumei.
package main

import (
	"github.com/samber/lo"
	"github.com/toumei/toumei/cmd"
	"github.com/toumei/toumei/config"
	"github.com/toumei/toumei/log"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
