package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kapu/sheos-insight-go/internal/domain"
	"github.com/kapu/sheos-insight-go/internal/schema"
)

func newFeaturesCmd() *cobra.Command {
	var examples bool

	cmd := &cobra.Command{
		Use:   "features",
		Short: "List the insight features",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printFeatures(cmd.OutOrStdout(), examples)
		},
	}

	cmd.Flags().BoolVar(&examples, "examples", false, "Print a sample profile for each feature")
	return cmd
}

func printFeatures(out io.Writer, examples bool) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FEATURE\tRESPONSE\tSAMPLE")

	for _, f := range domain.Features {
		kind := "text"
		if _, ok := schema.For(f); ok {
			kind = "json"
		}

		sample := ""
		if examples {
			if profile, ok := domain.ExampleProfile(f); ok {
				data, err := json.Marshal(profile)
				if err != nil {
					return err
				}
				sample = string(data)
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", f, kind, sample)
	}

	return w.Flush()
}
