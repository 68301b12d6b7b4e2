package texture

import "github.com/irradiance/pathtracer/pkg/loaders"

// LoadImage decodes an albedo/skybox image file and wraps it as an Image
// texture. A decode failure degrades to nil, which PBRMaterial.ResolveAlbedo
// treats as "no texture, use flat albedo" (spec §4.9's asset-load-failure
// policy), so a missing texture never aborts scene construction.
func LoadImage(path string) *Image {
	data, err := loaders.LoadImage(path)
	if err != nil {
		return nil
	}
	return NewImage(data.Width, data.Height, data.Pixels)
}
