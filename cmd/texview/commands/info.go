package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/woozymasta/texview"
	"github.com/woozymasta/texview/edds"
)

var infoCmd = &cobra.Command{
	Use:   "info FILE",
	Short: "Show the layout of a container",
	Long: `Print layers, faces, mip levels, texel format and the byte size of
every mip level of a container without decoding texel data.`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	cfg, err := edds.ReadConfig(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "file:       %s\n", args[0])
	fmt.Fprintf(out, "format:     %s (%v)\n", cfg.FormatName, texview.GPUFormat(cfg.Format))
	fmt.Fprintf(out, "dimensions: %s\n", cfg.Dimensions)
	fmt.Fprintf(out, "layers:     %d\n", cfg.Layers)
	fmt.Fprintf(out, "faces:      %d\n", cfg.Faces)
	fmt.Fprintf(out, "levels:     %d\n", cfg.Levels)

	faceBytes := 0
	for level := 0; level < cfg.Levels; level++ {
		dims := texview.MipDimensions(cfg.Dimensions, level)
		size := texview.LevelSize(cfg.Format, dims)
		faceBytes += size
		fmt.Fprintf(out, "  level %-2d  %-11s %d bytes\n", level, dims, size)
	}
	fmt.Fprintf(out, "total:      %d bytes\n", faceBytes*cfg.Faces*cfg.Layers)

	return nil
}
