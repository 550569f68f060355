package main

import (
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/objmodel/internal/assets"
	"github.com/Faultbox/objmodel/internal/logger"
	"github.com/Faultbox/objmodel/internal/watcher"
)

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <mesh.obj> [texture]",
		Short: "Reload and summarize a model whenever its files change",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			meshPath, texPath := args[0], ""
			if len(args) > 1 {
				texPath = args[1]
			}

			mgr := assets.NewManager(a.loader(), logger.Named("assets"))
			defer mgr.Close()

			w := cmd.OutOrStdout()
			show := func() {
				m, err := mgr.Get(meshPath, texPath)
				if err != nil {
					a.log.Error("reload failed", zap.String("mesh", meshPath), zap.Error(err))
					return
				}
				defer m.Release()
				printSummary(w, meshPath, texPath, m)
			}
			show()

			fw, err := watcher.NewFileWatcher(a.cfg.Watch.Debounce, logger.Named("watcher"))
			if err != nil {
				return err
			}
			defer fw.Close()

			// The watcher reports absolute paths; the cache is keyed by the paths given
			byAbs := map[string]string{}
			for _, p := range []string{meshPath, texPath} {
				if p == "" {
					continue
				}
				if abs, err := filepath.Abs(p); err == nil {
					byAbs[abs] = p
				}
			}

			err = fw.Watch([]string{meshPath, texPath}, func(changed string) {
				mgr.Invalidate(byAbs[changed])
				show()
			})
			if err != nil {
				return err
			}
			fw.Start()
			a.log.Info("watching for changes", zap.String("mesh", meshPath), zap.String("texture", texPath))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			<-ctx.Done()
			return nil
		},
	}
}
