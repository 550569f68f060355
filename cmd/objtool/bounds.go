package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Faultbox/objmodel/internal/engine/model"
)

func newBoundsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "bounds <mesh.obj>",
		Short: "Show the bounding box before and after re-centering",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.loader().Load(args[0], "", model.DefaultTransform())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			b := m.Bounds()
			fmt.Fprintf(w, "Size:   %s\n", m.BoundsSize())
			fmt.Fprintf(w, "Center: %s\n", m.Center())
			fmt.Fprintf(w, "Min:    %s\n", b.Min)
			fmt.Fprintf(w, "Max:    %s\n", b.Max)
			return nil
		},
	}
}
