// objtool inspects OBJ models and their diffuse textures.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/objmodel/internal/config"
	"github.com/Faultbox/objmodel/internal/engine/model"
	"github.com/Faultbox/objmodel/internal/logger"
)

// app carries state shared by every subcommand.
type app struct {
	flags config.Flags
	cfg   *config.Config
	log   *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "objtool",
		Short: "Inspect OBJ models and their textures",
		Long: `objtool loads Wavefront OBJ meshes the same way the engine does:
vertices are re-centered on their bounding box, face indices are converted
to 0-based, and the diffuse texture (BMP, TGA, PNG, JPEG, GIF, WebP) is decoded.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.ConfigPath, "config", "", "Path to config file")
	pf.BoolVar(&a.flags.Debug, "debug", false, "Enable debug logging")
	pf.StringVar(&a.flags.LogFile, "log-file", "", "Also write logs to this file")
	pf.BoolVar(&a.flags.LenientTexture, "lenient-texture", false, "Load the mesh even if the texture fails to decode")

	root.AddCommand(
		newInfoCmd(a),
		newFacesCmd(a),
		newBoundsCmd(a),
		newTextureCmd(a),
		newWatchCmd(a),
	)
	return root
}

// setup loads configuration and initializes logging.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.flags)
	if err != nil {
		return err
	}
	a.cfg = cfg

	var fileCfg logger.FileConfig
	if cfg.Logging.LogFile != "" {
		fileCfg = logger.FileConfig{
			Path:       cfg.Logging.LogFile,
			MaxSizeMB:  cfg.Logging.MaxSizeMB,
			MaxBackups: cfg.Logging.MaxBackups,
			MaxAgeDays: cfg.Logging.MaxAgeDays,
			Compress:   cfg.Logging.Compress,
		}
	}
	if err := logger.InitWithFileConfig(cfg.Logging.Level, fileCfg, true); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	a.log = logger.Named("objtool")
	a.log.Debug("config loaded", zap.Any("config", cfg))
	return nil
}

// loader returns a model loader configured from the loaded config.
func (a *app) loader() *model.Loader {
	return model.NewLoader(a.cfg.Model, logger.Named("model"))
}

func main() {
	defer logger.Sync()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logger.Sync()
		os.Exit(1)
	}
}
