package renderer

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/mncc8337/shrimpy/scene"
	"github.com/mncc8337/shrimpy/types"
)

type fakeTracer struct {
	uploaded []byte
	frames   []uint32
}

func (t *fakeTracer) UploadUniforms(data []byte) error {
	t.uploaded = data
	return nil
}

func (t *fakeTracer) Trace(frame uint32) error {
	t.frames = append(t.frames, frame)
	return nil
}

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()

	sc := scene.New()
	matID, err := sc.AddMaterial(scene.DiffuseMaterial(types.XYZ(0.7, 0.7, 0.7), 1.0))
	if err != nil {
		t.Fatal(err)
	}
	err = sc.AddTriangle(scene.NewTriangle([3]types.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}, matID))
	if err != nil {
		t.Fatal(err)
	}
	if err = sc.Build(); err != nil {
		t.Fatal(err)
	}

	r, err := New(sc, scene.NewCamera(), Options{FrameW: 800, FrameH: 600})
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestNewValidatesInputs(t *testing.T) {
	if _, err := New(nil, scene.NewCamera(), Options{}); err != ErrSceneNotDefined {
		t.Fatalf("expected ErrSceneNotDefined; got %v", err)
	}
	if _, err := New(scene.New(), nil, Options{}); err != ErrCameraNotDefined {
		t.Fatalf("expected ErrCameraNotDefined; got %v", err)
	}
}

func TestAccumulationTargetAlternates(t *testing.T) {
	r := newTestRenderer(t)

	if r.AccumulationTarget() != 0 {
		t.Fatalf("expected frame 0 to target texture 0; got %d", r.AccumulationTarget())
	}
	r.NextFrame()
	if r.AccumulationTarget() != 1 {
		t.Fatalf("expected frame 1 to target texture 1; got %d", r.AccumulationTarget())
	}
	r.NextFrame()
	if r.AccumulationTarget() != 0 {
		t.Fatalf("expected frame 2 to target texture 0; got %d", r.AccumulationTarget())
	}
}

func TestCameraMotionResetsAccumulation(t *testing.T) {
	r := newTestRenderer(t)

	motions := []func(){
		func() { r.Dolly(0.1) },
		func() { r.Strafe(0.1) },
		func() { r.Pedestal(0.1) },
		func() { r.Pan(0.01) },
		func() { r.Tilt(0.01) },
	}

	for idx, motion := range motions {
		r.NextFrame()
		r.NextFrame()
		motion()
		if r.FrameCount() != 0 {
			t.Fatalf("[motion %d] expected camera motion to reset the frame counter; got %d", idx, r.FrameCount())
		}
	}
}

func TestSceneEditResetsAccumulation(t *testing.T) {
	r := newTestRenderer(t)
	r.NextFrame()

	err := r.EditScene(func(sc *scene.Scene) error {
		return sc.AddSphere(scene.NewSphere(types.XYZ(0, 0, -3), 1, 0))
	})
	if err != nil {
		t.Fatal(err)
	}
	if r.FrameCount() != 0 {
		t.Fatalf("expected scene edit to reset the frame counter; got %d", r.FrameCount())
	}
	if r.sc.SphereCount() != 1 {
		t.Fatalf("expected the edit to be applied; got %d spheres", r.sc.SphereCount())
	}
}

func TestUniformPacketLayout(t *testing.T) {
	r := newTestRenderer(t)
	r.NextFrame()

	packet, err := r.Uniforms()
	if err != nil {
		t.Fatal(err)
	}
	if len(packet) != UniformPacketSize {
		t.Fatalf("expected a %d byte packet; got %d", UniformPacketSize, len(packet))
	}

	// The frame block trails the camera block.
	frameBlock := packet[scene.CameraBlockSize:]
	if got := binary.LittleEndian.Uint32(frameBlock[0:]); got != 800 {
		t.Fatalf("expected frame width 800; got %d", got)
	}
	if got := binary.LittleEndian.Uint32(frameBlock[4:]); got != 600 {
		t.Fatalf("expected frame height 600; got %d", got)
	}
	if got := binary.LittleEndian.Uint32(frameBlock[12:]); got != 1 {
		t.Fatalf("expected frame count 1; got %d", got)
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(frameBlock[16:])); got != 2.2 {
		t.Fatalf("expected default gamma 2.2; got %f", got)
	}
}

func TestRenderFrame(t *testing.T) {
	r := newTestRenderer(t)
	tracer := &fakeTracer{}

	if err := r.RenderFrame(tracer); err != nil {
		t.Fatal(err)
	}
	if err := r.RenderFrame(tracer); err != nil {
		t.Fatal(err)
	}

	if len(tracer.uploaded) != UniformPacketSize {
		t.Fatalf("expected the tracer to receive a %d byte packet; got %d", UniformPacketSize, len(tracer.uploaded))
	}
	expFrames := []uint32{1, 2}
	if len(tracer.frames) != 2 || tracer.frames[0] != expFrames[0] || tracer.frames[1] != expFrames[1] {
		t.Fatalf("expected the tracer to render frames %v; got %v", expFrames, tracer.frames)
	}
}
