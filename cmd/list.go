package cmd

import (
	"bytes"
	"fmt"

	"github.com/df07/go-lighttransport/pkg/integrator"
	"github.com/df07/go-lighttransport/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// List the built-in scenes.
func ListScenes(ctx *cli.Context) error {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Scene", "Description"})
	for _, def := range scene.Definitions() {
		table.Append([]string{def.Name, def.Description})
	}

	table.Render()
	fmt.Fprint(ctx.App.Writer, buf.String())
	return nil
}

// List the registered integrators.
func ListIntegrators(ctx *cli.Context) error {
	for _, name := range integrator.Names() {
		fmt.Fprintln(ctx.App.Writer, name)
	}
	return nil
}
