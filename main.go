package main

import (
	"fmt"
	"os"

	"github.com/df07/go-lighttransport/cmd"
	"github.com/urfave/cli"
)

func newApp() *cli.App {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "go-lighttransport"
	app.Usage = "estimate incident radiance with Monte Carlo light transport integrators"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging and print estimator timings",
		},
		cli.StringFlag{
			Name:  "log-level",
			Usage: "log level: debug, info, notice, warning or error",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "estimate",
			Usage: "estimate radiance along the probe ray of a built-in scene",
			Description: `
Build a built-in scene, preprocess the selected integrator and evaluate it many
times in parallel along the scene's probe ray. Prints the per-channel mean and
deviation followed by the collected path and photon counters.`,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "scene, s",
					Value: "cornell",
					Usage: "built-in scene name",
				},
				cli.StringFlag{
					Name:  "integrator, i",
					Value: "path_mis",
					Usage: "integrator name",
				},
				cli.IntFlag{
					Name:  "samples, n",
					Value: 4096,
					Usage: "number of integrator evaluations",
				},
				cli.IntFlag{
					Name:  "workers, w",
					Value: 0,
					Usage: "parallel workers (0 uses every cpu)",
				},
				cli.Int64Flag{
					Name:  "seed",
					Value: 1,
					Usage: "base random seed",
				},
				cli.IntFlag{
					Name:  "photons",
					Value: 100000,
					Usage: "photons emitted by the photon mapper",
				},
				cli.Float64Flag{
					Name:  "radius",
					Value: 0,
					Usage: "photon gather radius (0 derives it from the scene extent)",
				},
				cli.Float64Flag{
					Name:  "ao-length",
					Value: 1.0,
					Usage: "ambient occlusion ray length",
				},
				cli.IntFlag{
					Name:  "max-depth",
					Value: 0,
					Usage: "maximum path depth (0 leaves termination to russian roulette)",
				},
				cli.StringFlag{
					Name:  "heuristic",
					Value: "balance",
					Usage: "MIS weight heuristic: balance or power",
				},
			},
			Action: cmd.Estimate,
		},
		{
			Name:   "scenes",
			Usage:  "list built-in scenes",
			Action: cmd.ListScenes,
		},
		{
			Name:   "integrators",
			Usage:  "list available integrators",
			Action: cmd.ListIntegrators,
		},
		{
			Name:  "warptest",
			Usage: "integrate every warp density over its domain",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "samples, n",
					Value: 100000,
					Usage: "monte carlo samples per distribution",
				},
				cli.Float64Flag{
					Name:  "param",
					Value: 0.3,
					Usage: "sphere cap cosine or microfacet roughness",
				},
				cli.Int64Flag{
					Name:  "seed",
					Value: 1,
					Usage: "random seed",
				},
			},
			Action: cmd.WarpTest,
		},
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
