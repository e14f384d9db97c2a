package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cellux/glwindow"
)

var rootCmd = &cobra.Command{
	Use:   "glwindow-demo",
	Short: "Open an OpenGL window split into two reactive screens",
	Long: `glwindow-demo opens a native window, splits it into two screens that
track the window size through the signal graph, and logs mouse
enter/leave transitions per screen.

Keys:
  F12     save a screenshot
  Escape  quit`,
	RunE:         run,
	SilenceUsage: true,
}

func init() {
	flags := rootCmd.Flags()
	flags.Int("width", 960, "window width in logical points")
	flags.Int("height", 540, "window height in logical points")
	flags.Int("gl-major", 3, "OpenGL major version (3 or higher)")
	flags.Int("gl-minor", 3, "OpenGL minor version")
	flags.Bool("gl-debug", false, "request a debug context and log driver messages")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("screenshot", "screenshot.png", "path for screenshots taken with F12")
	flags.Bool("profile", false, "write a CPU profile to the working directory")
	for _, name := range []string{"width", "height", "gl-major", "gl-minor", "gl-debug", "log-level", "screenshot", "profile"} {
		viper.BindPFlag(name, flags.Lookup(name))
	}
}

func run(cmd *cobra.Command, args []string) error {
	if err := glwindow.InitLogger(viper.GetString("log-level")); err != nil {
		return err
	}
	if viper.GetBool("profile") {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	root, err := glwindow.CreateScreen(glwindow.ScreenConfig{
		Name: "glwindow-demo",
		Resolution: glwindow.Size{
			X: viper.GetInt("width"),
			Y: viper.GetInt("height"),
		},
		Major: viper.GetInt("gl-major"),
		Minor: viper.GetInt("gl-minor"),
		Debug: viper.GetBool("gl-debug"),
	})
	if err != nil {
		return err
	}

	leftArea := glwindow.Map(root.Inputs.WindowArea, func(a glwindow.Rect) glwindow.Rect {
		return glwindow.Rect{Min: a.Min, Max: glwindow.Point{X: (a.Min.X + a.Max.X) / 2, Y: a.Max.Y}}
	})
	rightArea := glwindow.Map(root.Inputs.WindowArea, func(a glwindow.Rect) glwindow.Rect {
		return glwindow.Rect{Min: glwindow.Point{X: (a.Min.X + a.Max.X) / 2, Y: a.Min.Y}, Max: a.Max}
	})

	teal := glwindow.Color{R: 32, G: 128, B: 128, A: 255}
	plum := glwindow.Color{R: 128, G: 32, B: 96, A: 255}
	left := root.ChildScreen(glwindow.ChildOptions{Name: "left", Area: leftArea, BackgroundColor: &teal})
	right := root.ChildScreen(glwindow.ChildOptions{Name: "right", Area: rightArea, BackgroundColor: &plum})

	for _, screen := range []*glwindow.Screen{root, left, right} {
		screen := screen
		screen.Inputs.MouseInside.Subscribe(func(inside bool) {
			slog.Info("mouseinside", "screen", screen.Name, "inside", inside)
		})
	}

	quad, err := glwindow.CreateSolidQuad(left,
		glwindow.Rect{Min: glwindow.Point{X: 40, Y: 40}, Max: glwindow.Point{X: 200, Y: 160}},
		glwindow.ColorWhite)
	if err != nil {
		return err
	}
	left.AddRenderObject(quad)

	root.Inputs.KeyboardButtons.Subscribe(func(keys []glfw.Key) {
		for _, key := range keys {
			switch key {
			case glfw.KeyEscape:
				root.Close()
			case glfw.KeyF12:
				path := viper.GetString("screenshot")
				if err := root.Screenshot(path, "color"); err != nil {
					slog.Warn("screenshot failed", "error", err)
				} else {
					slog.Info("screenshot saved", "path", path)
				}
			}
		}
	})

	return root.Run(nil)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
