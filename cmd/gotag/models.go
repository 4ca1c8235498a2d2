package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newModelsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List every model registered from the model configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := newAppContext()
			reg, err := app.registry()
			if err != nil {
				return err
			}
			for _, name := range reg.ListModels() {
				model, err := reg.Model(name)
				if err != nil {
					return err
				}
				fmt.Printf("%s  %v\n", name, model.Metadata())
			}
			return nil
		},
	}
}
