package scene

import (
	"encoding/binary"
	"math"

	"github.com/mncc8337/shrimpy/types"
)

// Serialized block sizes in bytes. The layout matches the shader's
// declared uniform structs field for field: every Vec3 is aligned to 16
// bytes and trailing pads round each struct up to its declared size.
const (
	CameraBlockSize   = 64
	materialBlockSize = 32
	sphereBlockSize   = 32
	triangleBlockSize = 64
	bvhNodeBlockSize  = 64

	SceneBlockSize = MaxMaterials*materialBlockSize +
		MaxSpheres*sphereBlockSize +
		MaxTriangles*triangleBlockSize +
		MaxBvhNodes*bvhNodeBlockSize +
		16 // live counts + padding
)

// blobWriter appends little-endian scalars at increasing offsets into a
// pre-zeroed buffer. Padding is expressed by skipping bytes.
type blobWriter struct {
	buf []byte
	off int
}

func (w *blobWriter) putF32(v float32) {
	binary.LittleEndian.PutUint32(w.buf[w.off:], math.Float32bits(v))
	w.off += 4
}

func (w *blobWriter) putU32(v uint32) {
	binary.LittleEndian.PutUint32(w.buf[w.off:], v)
	w.off += 4
}

func (w *blobWriter) putVec3(v types.Vec3) {
	w.putF32(v[0])
	w.putF32(v[1])
	w.putF32(v[2])
}

func (w *blobWriter) pad(n int) {
	w.off += n
}

// Serialize the camera into its 64-byte uniform block.
func (c *Camera) MarshalBinary() ([]byte, error) {
	w := &blobWriter{buf: make([]byte, CameraBlockSize)}

	w.putVec3(c.Position)
	w.pad(4)
	w.putVec3(c.Direction)
	w.putF32(c.FOV)
	w.putF32(c.Width)
	w.putF32(c.FocusDistance)
	w.putF32(c.Aperture)
	w.putF32(c.DivergeStrength)
	w.putU32(c.MaxRayBounces)
	w.pad(12)

	return w.buf, nil
}

// Serialize the scene into its uniform block: the full fixed-capacity
// material, sphere, triangle and bvh node arrays followed by the live
// counts. Unused slots are zero.
//
// Ownership of the returned buffer transfers to the caller; the scene
// never aliases it afterwards.
func (s *Scene) MarshalBinary() ([]byte, error) {
	w := &blobWriter{buf: make([]byte, SceneBlockSize)}

	for i := 0; i < MaxMaterials; i++ {
		mat := &s.materials[i]
		w.putVec3(mat.Color)
		w.putF32(mat.packedSurfaceParam())
		w.putF32(mat.EmissionStrength)
		w.putF32(mat.VolumeDensity)
		w.pad(8)
	}

	for i := 0; i < MaxSpheres; i++ {
		sphere := &s.spheres[i]
		w.putVec3(sphere.Center)
		w.putF32(sphere.Radius)
		w.putU32(sphere.MaterialID)
		w.pad(12)
	}

	for i := 0; i < MaxTriangles; i++ {
		tri := &s.triangles[i]
		w.putVec3(tri.V0)
		w.pad(4)
		w.putVec3(tri.V1)
		w.pad(4)
		w.putVec3(tri.V2)
		w.pad(4)
		w.putU32(tri.MaterialID)
		w.pad(12)
	}

	for i := 0; i < MaxBvhNodes; i++ {
		node := &s.bvhNodes[i]
		w.putVec3(node.Min)
		w.putU32(node.Child1)
		w.putVec3(node.Max)
		w.putU32(node.Child2)
		w.putU32(node.TriangleCount)
		for _, id := range node.TriangleIDs {
			w.putU32(id)
		}
	}

	w.putU32(uint32(s.sphereCount))
	w.putU32(uint32(s.triangleCount))
	w.pad(8)

	return w.buf, nil
}
