package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/orderdesk/internal/kernel"
	"github.com/shashiranjanraj/orderdesk/internal/server"
	"github.com/shashiranjanraj/orderdesk/pkg/router"
)

// orderdesk serve starts the HTTP (and gRPC health) server.
var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"run", "start"},
	Short:   "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.Start()
	},
}

// orderdesk route:list prints every route with its name.
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		k, err := kernel.NewHTTPKernel(kernel.Deps{})
		if err != nil {
			return err
		}
		return printRoutes(cmd.OutOrStdout(), k.Router().Routes())
	},
}

func printRoutes(out io.Writer, routes []router.Route) error {
	if len(routes) == 0 {
		fmt.Fprintln(out, "No routes registered.")
		return nil
	}
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "METHOD\tPATH\tNAME")
	fmt.Fprintln(w, "------\t----\t----")
	for _, ri := range routes {
		fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
	}
	return w.Flush()
}
