// ABOUTME: Visualization CLI command
// ABOUTME: Emits the warmth heatmap as graphviz output
package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/kindling-crm/kindling/dashboard"
	"github.com/kindling-crm/kindling/viz"
)

// VizHeatmapCommand generates the network heatmap graph.
func VizHeatmapCommand(svc *dashboard.Service, args []string) error {
	fs := flag.NewFlagSet("viz heatmap", flag.ExitOnError)
	output := fs.String("output", "", "Output file (default: stdout)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	generator := viz.NewGraphGenerator(svc.DB())
	dot, err := generator.GenerateNetworkHeatmap()
	if err != nil {
		return err
	}

	if *output != "" {
		return os.WriteFile(*output, []byte(dot), 0644)
	}
	fmt.Println(dot)
	return nil
}
