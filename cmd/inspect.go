package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"rotor-viewer/core/scene"
	"rotor-viewer/core/viewer"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var inspectOpts inspectOptions

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Load and configure a rotor model without a browser",
	Long: `Runs the viewer bootstrap headless: loads the environment and the model, normalizes
the model, applies the part materials and renders a few frames. Prints the found and missing
parts, and optionally writes the configured model as GLB.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime(false)
		if err != nil {
			return err
		}
		defer rt.logg.Sync()

		opts := inspectOpts
		opts.File = rt.cfg.Viewer.ModelPath
		if len(args) == 1 {
			opts.File = args[0]
		}
		opts.EnvironmentURL = rt.cfg.Viewer.EnvironmentURL
		opts.Fetcher = viewer.NewHTTPFetcher(rt.cfg.Viewer.FetchTimeout())

		result, err := inspectModel(cmd.Context(), opts, rt.logg)
		if err != nil {
			return err
		}

		if opts.JSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}

		report := result.Report
		rt.logg.Info("Model configured",
			zap.String("file", opts.File),
			zap.Float64("scale", report.Normalization.Scale),
			zap.Int("meshes", report.Meshes),
			zap.Int("frames", result.Frames),
		)
		if len(report.Missing) == 0 {
			rt.logg.Info("All parts present.", zap.Strings("parts", report.Found))
		} else {
			rt.logg.Warn("Parts missing from model", zap.Strings("missing", report.Missing))
		}
		if result.EnvironmentError != "" {
			rt.logg.Warn("Environment unavailable", zap.String("error", result.EnvironmentError))
		}
		if opts.Out != "" {
			rt.logg.Info("Configured model written", zap.String("out", opts.Out))
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(inspectCmd)

	f := inspectCmd.Flags()
	f.BoolVar(&inspectOpts.JSON, "json", false, "Output the report as JSON")
	f.StringVar(&inspectOpts.Out, "out", "", "Write the configured model as GLB to this path")
	f.BoolVar(&inspectOpts.Offline, "offline", false, "Skip the environment download")
	f.IntVar(&inspectOpts.Frames, "frames", 1, "Frames to render after loading")
	f.IntVar(&inspectOpts.Width, "width", 1280, "Surface width")
	f.IntVar(&inspectOpts.Height, "height", 720, "Surface height")
	f.DurationVar(&inspectOpts.Timeout, "timeout", time.Minute, "Give up loading after this long")
}

type inspectOptions struct {
	File           string
	JSON           bool
	Out            string
	Offline        bool
	Frames         int
	Width          int
	Height         int
	Timeout        time.Duration
	EnvironmentURL string
	Fetcher        viewer.Fetcher
}

type inspection struct {
	File             string                  `json:"file"`
	Report           scene.Report            `json:"report"`
	Environment      *environmentInfo        `json:"environment,omitempty"`
	EnvironmentError string                  `json:"environment_error,omitempty"`
	Camera           cameraInfo              `json:"camera"`
	Settings         viewer.RendererSettings `json:"renderer"`
	Frames           int                     `json:"frames"`
}

type environmentInfo struct {
	URL     string `json:"url"`
	Mapping string `json:"mapping"`
	Bytes   int    `json:"bytes"`
}

type cameraInfo struct {
	FOV      float64    `json:"fov"`
	Aspect   float64    `json:"aspect"`
	Near     float64    `json:"near"`
	Far      float64    `json:"far"`
	Position [3]float64 `json:"position"`
}

// inspectModel drives a headless viewer over opts.File.
func inspectModel(ctx context.Context, opts inspectOptions, logg *zap.Logger) (*inspection, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = time.Minute
	}
	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	renderer := viewer.NewHeadlessRenderer(viewer.DefaultRendererSettings())
	v := viewer.New(viewer.Options{
		Settings:       viewer.DefaultRendererSettings(),
		Renderer:       renderer,
		Width:          opts.Width,
		Height:         opts.Height,
		EnvironmentURL: opts.EnvironmentURL,
		Fetcher:        opts.Fetcher,
		Model:          viewer.FileLoader{Path: opts.File},
		Logger:         logg,
	})

	if opts.Offline {
		v.LoadModel(ctx)
	} else {
		v.Start(ctx)
	}
	loaded, err := v.Wait(ctx)
	if err != nil {
		return nil, err
	}
	if loaded.ModelErr != nil {
		return nil, fmt.Errorf("failed to load %s: %w", opts.File, loaded.ModelErr)
	}

	for i := 0; i < opts.Frames; i++ {
		if err := v.Frame(); err != nil {
			return nil, fmt.Errorf("render failed: %w", err)
		}
	}

	cam := v.Camera()
	result := &inspection{
		File:     opts.File,
		Report:   *loaded.Report,
		Settings: v.Settings(),
		Frames:   renderer.Frames(),
		Camera: cameraInfo{
			FOV:      cam.FOV,
			Aspect:   cam.Aspect,
			Near:     cam.Near,
			Far:      cam.Far,
			Position: [3]float64{cam.Position.X, cam.Position.Y, cam.Position.Z},
		},
	}
	if env := v.Scene().Environment(); env != nil {
		result.Environment = &environmentInfo{URL: env.URL, Mapping: env.Mapping, Bytes: env.Size}
	}
	if loaded.EnvironmentErr != nil {
		result.EnvironmentError = loaded.EnvironmentErr.Error()
	}

	if opts.Out != "" {
		if err := writeModel(v.Scene().Model(), opts.Out); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func writeModel(m *scene.Model, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := m.Export(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
