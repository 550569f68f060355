package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/Faultbox/objmodel/internal/engine/texture"
)

func newTextureCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "texture <image>",
		Short: "Decode a texture and show its size",
		Long:  "Decode a texture the way model loading does and print its dimensions and format.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tex, err := texture.Load(args[0])
			if err != nil {
				exts := texture.SupportedExtensions()
				sort.Strings(exts)
				return fmt.Errorf("%w (supported: %v)", err, exts)
			}
			defer tex.Release()

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Texture: %s\n", tex.Path)
			fmt.Fprintf(w, "Format:  %s\n", tex.Format)
			fmt.Fprintf(w, "Size:    %dx%d\n", tex.Width(), tex.Height())
			return nil
		},
	}
}
