package cmd

import (
	"encoding/json"
	"fmt"

	"rotor-viewer/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Check that everything the viewer serves is in place",
	Long: `Checks the views, the public directory, the rendering library modules and the model,
the storage bucket when storage is enabled and the load history table when a database is reachable.
With --fix, missing directories, the bucket and the table are created.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fix, _ := cmd.Flags().GetBool("fix")
		jsonOutput, _ := cmd.Flags().GetBool("json")

		rt, err := newRuntime(true)
		if err != nil {
			return err
		}
		defer rt.logg.Sync()

		svc := integrity.NewService(integrity.Options{
			Server:  rt.cfg.Server,
			Viewer:  rt.cfg.Viewer,
			Storage: rt.cfg.Storage,
			Client:  rt.store,
			DB:      rt.db,
			Logger:  rt.logg,
		})

		rt.logg.Info("Running integrity checks...", zap.Bool("fix", fix))
		report := svc.Run(cmd.Context(), fix)

		if jsonOutput {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(report); err != nil {
				return err
			}
		} else {
			logSection(rt.logg, "layout", report.Layout)
			logSection(rt.logg, "storage", report.Storage)
			logSection(rt.logg, "schema", report.Schema)
		}

		if !report.Healthy() {
			if !fix {
				rt.logg.Info("Run with --fix to create what can be created.")
			}
			return fmt.Errorf("integrity check failed")
		}
		rt.logg.Info("Everything is in place.")
		return nil
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.Flags().Bool("fix", false, "Create missing directories, bucket and table")
	integrityCmd.Flags().Bool("json", false, "Output the report as JSON")
}

func logSection(logg *zap.Logger, name string, s integrity.Section) {
	fields := []zap.Field{zap.String("check", name), zap.String("status", s.Status)}
	if s.Details != nil {
		fields = append(fields, zap.Any("details", s.Details))
	}
	switch s.Status {
	case "ok":
		logg.Info("Check passed", fields...)
	case "skipped":
		logg.Info("Check skipped", fields...)
	case "missing":
		logg.Warn("Check found missing entries", fields...)
	default:
		if s.Error != "" {
			fields = append(fields, zap.String("error", s.Error))
		}
		logg.Error("Check failed", fields...)
	}
}
