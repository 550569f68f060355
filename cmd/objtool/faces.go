package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Faultbox/objmodel/internal/engine/model"
)

func newFacesCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "faces <mesh.obj>",
		Short: "List triangles with their 0-based corner indices",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.loader().Load(args[0], "", model.DefaultTransform())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			n := m.NumFaces()
			if limit > 0 && limit < n {
				n = limit
			}
			for i := 0; i < n; i++ {
				f, err := m.Face(i)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%d: %d/%d/%d %d/%d/%d %d/%d/%d\n", i,
					f[0].Vertex, f[0].TexCoord, f[0].Normal,
					f[1].Vertex, f[1].TexCoord, f[1].Normal,
					f[2].Vertex, f[2].TexCoord, f[2].Normal)
			}
			if n < m.NumFaces() {
				fmt.Fprintf(cmd.ErrOrStderr(), "\n(showing first %d of %d faces, use -n 0 for all)\n", n, m.NumFaces())
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "Limit output to N faces (0 = all)")
	return cmd
}
