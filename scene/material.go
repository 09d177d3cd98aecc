package scene

import "github.com/mncc8337/shrimpy/types"

type SurfaceType uint32

const (
	// Lambertian-style surface; Roughness selects between mirror-like (0)
	// and fully diffuse (1) scattering in the shader.
	SurfaceDiffuse SurfaceType = iota

	// Transmissive surface; IOR holds the index of refraction.
	SurfaceDielectric
)

// Defines a scene material. Materials are copied into a fixed scene slot
// and referenced by primitives through their slot index.
type Material struct {
	// The type of the surface.
	Type SurfaceType

	// Surface color.
	Color types.Vec3

	// Diffuse roughness in [0, 1]. Only meaningful for diffuse surfaces.
	Roughness float32

	// Index of refraction. Only meaningful for dielectric surfaces.
	IOR float32

	// Emitted radiance scaler. Zero for non-emissive surfaces.
	EmissionStrength float32

	// Participating media density for volumetric surfaces.
	VolumeDensity float32
}

// Create a diffuse material.
func DiffuseMaterial(color types.Vec3, roughness float32) Material {
	return Material{
		Type:          SurfaceDiffuse,
		Color:         color,
		Roughness:     roughness,
		VolumeDensity: 1.0,
	}
}

// Create a dielectric material with the given index of refraction.
func DielectricMaterial(color types.Vec3, ior float32) Material {
	return Material{
		Type:          SurfaceDielectric,
		Color:         color,
		IOR:           ior,
		VolumeDensity: 1.0,
	}
}

// Create a diffuse material that emits light.
func EmissiveMaterial(color types.Vec3, strength float32) Material {
	mat := DiffuseMaterial(color, 1.0)
	mat.EmissionStrength = strength
	return mat
}

// The shader encodes the surface type into the sign of a single scalar:
// non-negative values are diffuse roughness, negative values are
// dielectrics with IOR = |value|. The encoding only exists at the
// serialization boundary.
func (m Material) packedSurfaceParam() float32 {
	if m.Type == SurfaceDielectric {
		return -m.IOR
	}
	return m.Roughness
}
