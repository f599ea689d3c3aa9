package cmd

import (
	"bytes"
	"fmt"
	"math"

	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/warp"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Integrate every warp density over its domain. Correct densities integrate to one.
func WarpTest(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	samples := ctx.Int("samples")
	param := ctx.Float64("param")
	sampler := core.NewSeededSampler(ctx.Int64("seed"))

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Distribution", "Integral", "Error"})

	worst := 0.0
	for _, d := range warp.Distributions() {
		integral := warp.Integrate(d, param, sampler, samples)
		worst = math.Max(worst, math.Abs(integral-1))
		table.Append([]string{
			d.String(),
			fmt.Sprintf("%.4f", integral),
			fmt.Sprintf("%+.4f", integral-1),
		})
	}
	table.SetFooter([]string{"", "MAX ERROR", fmt.Sprintf("%.4f", worst)})

	table.Render()
	logger.Infof("integrated %d distributions with %d samples each", len(warp.Distributions()), samples)
	fmt.Fprint(ctx.App.Writer, buf.String())
	return nil
}
