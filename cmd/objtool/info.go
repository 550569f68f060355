package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Faultbox/objmodel/internal/engine/model"
)

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info <mesh.obj> [texture]",
		Short: "Show counts, bounds and texture size of a model",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			meshPath, texPath := args[0], ""
			if len(args) > 1 {
				texPath = args[1]
			}

			m, err := a.loader().Load(meshPath, texPath, model.DefaultTransform())
			if err != nil {
				return err
			}
			defer m.Release()

			printSummary(cmd.OutOrStdout(), meshPath, texPath, m)
			return nil
		},
	}
}

// printSummary writes the model statistics shared by info and watch.
func printSummary(w io.Writer, meshPath, texPath string, m *model.Model) {
	fmt.Fprintln(w, "Model Information")
	fmt.Fprintln(w, "=================")
	fmt.Fprintf(w, "Mesh:    %s\n", meshPath)
	if texPath == "" {
		texPath = "(none)"
	}
	fmt.Fprintf(w, "Texture: %s\n\n", texPath)

	fmt.Fprintf(w, "Vertices:  %d\n", m.NumVerts())
	fmt.Fprintf(w, "TexCoords: %d\n", m.NumTexCoords())
	fmt.Fprintf(w, "Normals:   %d\n", m.NumNormals())
	fmt.Fprintf(w, "Faces:     %d\n\n", m.NumFaces())

	fmt.Fprintf(w, "Bounds size:   %s\n", m.BoundsSize())
	fmt.Fprintf(w, "Bounds center: %s\n", m.Center())

	if tex := m.Texture(); m.HasTexture() {
		fmt.Fprintf(w, "\nTexture size: %dx%d (%s)\n", tex.Width(), tex.Height(), tex.Format)
	}
}
