package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/gotag/gotag/internal/pipeline"
)

func newPipelinesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pipelines",
		Short: "List every registered pipeline, plus any discovered pipeline-file sidecars",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			specs := samplesByName()
			names := make([]string, 0, len(specs))
			for name := range specs {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Printf("%s  %s\n", name, specs[name].Description)
			}

			app := newAppContext()
			extras, err := pipeline.DiscoverFiles(app.cfg.BaseFolder)
			if err != nil || len(extras) == 0 {
				return nil
			}
			for _, d := range extras {
				if _, ok := specs[d.Name]; ok {
					continue
				}
				fmt.Printf("%s  %s  (file only, no create_dag registered)\n", d.Name, d.Description)
			}
			return nil
		},
	}
}
