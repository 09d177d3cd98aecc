// Package reader loads triangle meshes from line-oriented wavefront
// object files.
package reader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mncc8337/shrimpy/log"
	"github.com/mncc8337/shrimpy/scene"
	"github.com/mncc8337/shrimpy/types"
)

type wavefrontMeshReader struct {
	logger log.Logger

	// The material slot assigned to every parsed triangle.
	materialID uint32

	// List of vertices and uv coords. Uv coords are parsed for
	// compatibility with textured exports but are not carried over to
	// the triangle list.
	vertexList []types.Vec3
	uvList     []types.Vec2

	triangles []scene.Triangle
}

// Read a triangle mesh from the wavefront object file at path. All
// triangles reference the given material slot. Malformed lines are
// skipped with a diagnostic; only an unreadable file yields an error.
func ReadFile(path string, materialID uint32) ([]scene.Triangle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reader: could not open %q: %v", path, err)
	}
	defer f.Close()

	return Read(f, path, materialID)
}

// Read a triangle mesh from r. The name is only used for diagnostics.
func Read(r io.Reader, name string, materialID uint32) ([]scene.Triangle, error) {
	mr := &wavefrontMeshReader{
		logger:     log.New("wavefront mesh reader"),
		materialID: materialID,
	}

	start := time.Now()
	if err := mr.parse(r, name); err != nil {
		return nil, err
	}
	mr.logger.Noticef(`parsed %d triangles from "%s" in %d us`, len(mr.triangles), name, time.Since(start).Nanoseconds()/1e3)

	return mr.triangles, nil
}

// Parse the wavefront object subset: "v" vertex lines, "vt" texture
// coordinate lines and "f" face lines with 1-based, optionally
// slash-interleaved indices. Unknown keywords and comments are ignored.
func (mr *wavefrontMeshReader) parse(r io.Reader, name string) error {
	var lineNum int

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineNum++
		lineTokens := strings.Fields(scanner.Text())
		if len(lineTokens) == 0 || strings.HasPrefix(lineTokens[0], "#") {
			continue
		}

		var err error
		switch lineTokens[0] {
		case "v":
			var v types.Vec3
			v, err = parseVec3(lineTokens)
			if err == nil {
				mr.vertexList = append(mr.vertexList, v)
			}
		case "vt":
			var v types.Vec2
			v, err = parseVec2(lineTokens)
			if err == nil {
				// The shader samples textures with a flipped origin.
				mr.uvList = append(mr.uvList, types.XY(1.0-v[0], 1.0-v[1]))
			}
		case "f":
			err = mr.parseFace(lineTokens)
		}

		if err != nil {
			mr.logger.Warningf("[%s: %d] skipping line: %s", name, lineNum, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reader: error while reading %q: %v", name, err)
	}
	return nil
}

// Parse a face definition. Each vertex argument is either a plain vertex
// index or a slash-separated index group whose first entry is the vertex
// index. Triangular and quad faces are supported; quads are emitted as
// two triangles.
func (mr *wavefrontMeshReader) parseFace(lineTokens []string) error {
	if len(lineTokens) < 4 || len(lineTokens) > 5 {
		return fmt.Errorf(`unsupported syntax for "f"; expected 3 arguments for a triangular face or 4 for a quad; got %d`, len(lineTokens)-1)
	}

	var vertices [4]types.Vec3
	for arg := 0; arg < len(lineTokens)-1; arg++ {
		vTokens := strings.Split(lineTokens[arg+1], "/")
		if vTokens[0] == "" {
			return fmt.Errorf("face argument %d does not include a vertex index", arg)
		}

		vOffset, err := selectFaceCoordIndex(vTokens[0], len(mr.vertexList))
		if err != nil {
			return fmt.Errorf("could not parse vertex coord for face argument %d: %s", arg, err)
		}
		vertices[arg] = mr.vertexList[vOffset]
	}

	mr.triangles = append(mr.triangles, scene.NewTriangle(
		[3]types.Vec3{vertices[0], vertices[1], vertices[2]},
		mr.materialID,
	))

	// Emit the second half of a quad face.
	if len(lineTokens) == 5 {
		mr.triangles = append(mr.triangles, scene.NewTriangle(
			[3]types.Vec3{vertices[0], vertices[2], vertices[3]},
			mr.materialID,
		))
	}
	return nil
}

// Convert a 1-based wavefront index token to a list offset. Negative
// indices select coordinates relative to the list end.
func selectFaceCoordIndex(indexToken string, listLen int) (int, error) {
	index, err := strconv.Atoi(indexToken)
	if err != nil {
		return -1, err
	}

	offset := index - 1
	if index < 0 {
		offset = listLen + index
	}
	if offset < 0 || offset >= listLen {
		return -1, fmt.Errorf("index out of bounds")
	}
	return offset, nil
}

// Parse a Vec2 from a token list.
func parseVec2(lineTokens []string) (types.Vec2, error) {
	if len(lineTokens) < 3 {
		return types.Vec2{}, fmt.Errorf("unsupported syntax for '%s'; expected 2 arguments; got %d", lineTokens[0], len(lineTokens)-1)
	}

	var v types.Vec2
	for tokIdx := 1; tokIdx <= 2; tokIdx++ {
		val, err := strconv.ParseFloat(lineTokens[tokIdx], 32)
		if err != nil {
			return types.Vec2{}, err
		}
		v[tokIdx-1] = float32(val)
	}
	return v, nil
}

// Parse a Vec3 from a token list.
func parseVec3(lineTokens []string) (types.Vec3, error) {
	if len(lineTokens) < 4 {
		return types.Vec3{}, fmt.Errorf("unsupported syntax for '%s'; expected 3 arguments; got %d", lineTokens[0], len(lineTokens)-1)
	}

	var v types.Vec3
	for tokIdx := 1; tokIdx <= 3; tokIdx++ {
		val, err := strconv.ParseFloat(lineTokens[tokIdx], 32)
		if err != nil {
			return types.Vec3{}, err
		}
		v[tokIdx-1] = float32(val)
	}
	return v, nil
}
