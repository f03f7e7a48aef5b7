package commands

import (
	"fmt"
	"image"
	"os"

	"github.com/spf13/cobra"
	"github.com/woozymasta/bcn"
	"github.com/woozymasta/texview/edds"
)

var (
	cubeFormat     string
	cubeNoCompress bool
)

var cubeCmd = &cobra.Command{
	Use:   "cube OUT FACE0 [FACE1 ... FACE5]",
	Short: "Build a cube-map container from face images",
	Long: `Encode one PNG per face, generate the full mip chain of every face and
write the result as a container. Faces follow the +X, -X, +Y, -Y, +Z, -Z
order and must all have the same size.`,
	Args: cobra.RangeArgs(2, 7),
	RunE: runCube,
}

func init() {
	rootCmd.AddCommand(cubeCmd)

	cubeCmd.Flags().StringVarP(&cubeFormat, "format", "f", "dxt5", "texel format: dxt1, dxt3, dxt5, bc4, bc5, rgba8, bgra8")
	cubeCmd.Flags().BoolVar(&cubeNoCompress, "no-compress", false, "store COPY blocks only")
}

func runCube(cmd *cobra.Command, args []string) error {
	format, err := parseFormat(cubeFormat)
	if err != nil {
		return err
	}

	faces := make([]image.Image, 0, len(args)-1)
	for _, path := range args[1:] {
		img, err := loadImage(path)
		if err != nil {
			return err
		}
		faces = append(faces, img)
	}

	opts := &edds.WriteOptions{
		Compress:      !cubeNoCompress,
		EncodeOptions: &bcn.EncodeOptions{QualityLevel: bcn.QualityLevelFast},
	}
	cube, err := edds.CubeFromImages(faces, format, opts)
	if err != nil {
		return err
	}
	if err := edds.WriteFile(args[0], cube.Storage(), opts); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s: %d faces, %d levels, %s %s\n",
		args[0], cube.Faces(), cube.Levels(), cube.Dimensions(), cubeFormat)
	return nil
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	return img, nil
}
