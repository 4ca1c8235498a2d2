package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newAddIDsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add-ids <cases-file>",
		Short: "Assign a fresh uuid to any case in a cases file missing one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return addIDs(args[0])
		},
	}
}

func addIDs(path string) error {
	cases, err := loadCases(path)
	if err != nil {
		return err
	}

	added := 0
	for _, c := range cases {
		if id, _ := c["uuid"].(string); id == "" {
			c["uuid"] = uuid.NewString()
			added++
		}
	}

	if err := writeCases(path, cases); err != nil {
		return err
	}
	fmt.Printf("assigned %d new uuid(s)\n", added)
	return nil
}
