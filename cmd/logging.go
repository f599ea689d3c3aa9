package cmd

import (
	"fmt"
	"io"

	"github.com/df07/go-lighttransport/pkg/log"
	"github.com/urfave/cli"
)

var logger = log.New("lighttransport")

func setupLogging(ctx *cli.Context) error {
	if name := ctx.GlobalString("log-level"); name != "" {
		level, err := log.ParseLevel(name)
		if err != nil {
			return err
		}
		log.SetLevel(level)
	}

	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
	return nil
}

// reporter prints estimator summaries next to the command output
type reporter struct {
	w io.Writer
}

func (r reporter) Printf(format string, args ...interface{}) {
	fmt.Fprintf(r.w, format, args...)
}
