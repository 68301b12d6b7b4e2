// Package loaders decodes albedo/skybox images from disk into the flat
// Vec3 pixel arrays pkg/texture consumes, registering every image format
// the corpus's OBJ-adjacent model packages ship (PNG/JPEG via stdlib, WebP,
// TGA, and BMP via third-party decoders).
package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"

	_ "github.com/HugoSmits86/nativewebp" // WebP decoder
	_ "github.com/ftrvxmtrx/tga"          // TGA decoder
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"

	"github.com/irradiance/pathtracer/pkg/core"
)

func init() {
	image.RegisterFormat("bmp", "BM", bmp.Decode, bmp.DecodeConfig)
}

// ImageData contains decoded image data as a flat Vec3 array, row-major
// from the top of the image (pkg/texture's Image.Sample maps v=0 to the
// bottom row).
type ImageData struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// LoadImage decodes filename, auto-detecting its format from the registered
// decoders (PNG, JPEG, WebP, TGA, BMP), and converts it to a Vec3 array.
func LoadImage(filename string) (*ImageData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open image file: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	return fromImage(img), nil
}

// Resize scales src to the given width/height using x/image/draw's
// bilinear scaler. LoadImage does not call it; images are converted at
// their decoded resolution.
func Resize(src image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}

func fromImage(img image.Image) *ImageData {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			pixels[y*width+x] = core.NewVec3(
				float64(r)/65535.0,
				float64(g)/65535.0,
				float64(b)/65535.0,
			)
		}
	}

	return &ImageData{Width: width, Height: height, Pixels: pixels}
}
