package cmd

import (
	"github.com/mncc8337/shrimpy/log"
	"github.com/urfave/cli"
)

var logger = log.New("shrimpy")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}
