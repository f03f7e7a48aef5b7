package commands

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/woozymasta/bcn"
	"github.com/woozymasta/texview"
)

var verbose bool

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "texview",
	Short: "Inspect and build cube-map texture containers",
	Long: `texview inspects EDDS texture containers holding 2D textures, cube maps
and cube-map arrays, extracts single faces and mip levels as PNG and
builds cube maps from face images.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		if !verbose {
			texview.SetLogger(nil)
			return
		}
		texview.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log storage and container events to stderr")
}

var formatNames = map[string]bcn.Format{
	"dxt1":  bcn.FormatDXT1,
	"dxt3":  bcn.FormatDXT3,
	"dxt5":  bcn.FormatDXT5,
	"bc4":   bcn.FormatBC4,
	"bc5":   bcn.FormatBC5,
	"rgba8": bcn.FormatRGBA8,
	"bgra8": bcn.FormatBGRA8,
}

// parseFormat maps a --format value to a texel format.
func parseFormat(name string) (bcn.Format, error) {
	format, ok := formatNames[strings.ToLower(name)]
	if !ok {
		return bcn.FormatUnknown, fmt.Errorf("unknown format %q (want dxt1, dxt3, dxt5, bc4, bc5, rgba8 or bgra8)", name)
	}

	return format, nil
}
