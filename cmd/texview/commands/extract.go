package commands

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/woozymasta/texview"
	"github.com/woozymasta/texview/edds"
)

var (
	extractLayer  int
	extractFace   int
	extractLevel  int
	extractOutput string
)

var extractCmd = &cobra.Command{
	Use:   "extract FILE",
	Short: "Extract one face and mip level as PNG",
	Long: `Decode a single (layer, face, level) image of a container and write it
as PNG. The output defaults to FILE_L<layer>_F<face>_M<level>.png next to
the input.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().IntVar(&extractLayer, "layer", 0, "array layer")
	extractCmd.Flags().IntVar(&extractFace, "face", 0, "cube face")
	extractCmd.Flags().IntVar(&extractLevel, "level", 0, "mip level")
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "output PNG path")
}

func runExtract(cmd *cobra.Command, args []string) error {
	s, err := edds.ReadFile(args[0])
	if err != nil {
		return err
	}

	cube, err := texview.WrapCubeArray(s).Layer(extractLayer)
	if err != nil {
		return fmt.Errorf("layer %d: %w", extractLayer, err)
	}
	face, err := cube.Face(extractFace)
	if err != nil {
		return fmt.Errorf("face %d: %w", extractFace, err)
	}
	img, err := edds.DecodeLevel(face, extractLevel, nil)
	if err != nil {
		return err
	}

	output := extractOutput
	if output == "" {
		base := strings.TrimSuffix(args[0], filepath.Ext(args[0]))
		output = fmt.Sprintf("%s_L%d_F%d_M%d.png", base, extractLayer, extractFace, extractLevel)
	}

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode %s: %w", output, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	b := img.Bounds()
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%dx%d)\n", output, b.Dx(), b.Dy())
	return nil
}
