package cmd

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"

	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/integrator"
	"github.com/df07/go-lighttransport/pkg/metrics"
	"github.com/df07/go-lighttransport/pkg/renderer"
	"github.com/df07/go-lighttransport/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli"
)

// Estimate radiance along the probe ray of a built-in scene.
func Estimate(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	def, err := scene.Lookup(ctx.String("scene"))
	if err != nil {
		return err
	}
	sc, err := def.Build()
	if err != nil {
		return fmt.Errorf("build scene %s: %w", def.Name, err)
	}

	heuristic, err := integrator.ParseHeuristic(ctx.String("heuristic"))
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	config := integrator.DefaultConfig()
	config.AOLength = ctx.Float64("ao-length")
	config.PhotonCount = ctx.Int("photons")
	config.PhotonRadius = ctx.Float64("radius")
	config.MaxDepth = ctx.Int("max-depth")
	config.Heuristic = heuristic
	config.Metrics = metrics.New(reg)

	integ, err := integrator.New(ctx.String("integrator"), config)
	if err != nil {
		return err
	}

	seed := ctx.Int64("seed")
	logger.Noticef("preprocessing %s on scene %s", integ.Name(), def.Name)
	if err := integ.Preprocess(sc, core.NewSeededSampler(PreprocessSeed(seed))); err != nil {
		return err
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	estimator := renderer.NewEstimator(renderer.Config{
		Samples: ctx.Int("samples"),
		Workers: ctx.Int("workers"),
		Seed:    seed,
	})
	if ctx.GlobalBool("vv") {
		estimator.SetLogger(reporter{w: ctx.App.Writer})
	}
	result, err := estimator.Estimate(sigCtx, integ, sc, def.Probe)
	if err != nil {
		return err
	}

	rows, err := metrics.Rows(reg)
	if err != nil {
		return err
	}

	fmt.Fprint(ctx.App.Writer, formatEstimate(integ.Name(), def.Name, result))
	fmt.Fprint(ctx.App.Writer, formatMetrics(rows))
	return nil
}

// PreprocessSeed derives the preprocess seed from the base seed. Estimator batch i uses seed+i.
func PreprocessSeed(seed int64) int64 {
	return seed ^ 0x5deece66d
}

func formatEstimate(integratorName, sceneName string, result renderer.Estimate) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Channel", "Mean", "Std dev", "Std error"})

	stdErr := result.StdError()
	channels := []struct {
		name           string
		mean, variance float64
		stdErr         float64
	}{
		{"R", result.Mean.X, result.Variance.X, stdErr.X},
		{"G", result.Mean.Y, result.Variance.Y, stdErr.Y},
		{"B", result.Mean.Z, result.Variance.Z, stdErr.Z},
	}
	for _, ch := range channels {
		table.Append([]string{
			ch.name,
			fmt.Sprintf("%.6f", ch.mean),
			fmt.Sprintf("%.6f", math.Sqrt(ch.variance)),
			fmt.Sprintf("%.6f", ch.stdErr),
		})
	}
	table.SetFooter([]string{integratorName, sceneName, "SAMPLES", fmt.Sprintf("%d", result.Samples)})

	table.Render()
	return buf.String()
}

func formatMetrics(rows [][]string) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Metric", "Labels", "Value"})
	table.AppendBulk(rows)

	table.Render()
	return buf.String()
}
