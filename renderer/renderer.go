// Package renderer owns the frame and accumulation bookkeeping that sits
// between the scene core and the external GPU layer. The GPU layer is
// reached only through the Tracer interface and the packed uniform
// buffer; pipeline, surface and kernel setup live outside this module.
package renderer

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/mncc8337/shrimpy/log"
	"github.com/mncc8337/shrimpy/scene"
)

// Size of the frame block that follows the camera block in the uniform
// buffer, and of the full assembled packet.
const (
	FrameBlockSize    = 32
	UniformPacketSize = scene.CameraBlockSize + FrameBlockSize + scene.SceneBlockSize
)

// The Tracer interface is implemented by the external GPU layer. It
// consumes the packed uniform buffer and accumulates radiance samples
// into one of two alternating storage textures selected by frame parity.
type Tracer interface {
	// Upload a packed uniform buffer. Ownership of the buffer
	// transfers to the tracer.
	UploadUniforms(data []byte) error

	// Trace and present one frame.
	Trace(frame uint32) error
}

// Renderer tracks the progressive accumulation state for a scene/camera
// pair. It is single-threaded by contract: the surrounding application
// loop exclusively owns it and the scene and camera it references.
type Renderer struct {
	logger log.Logger

	sc  *scene.Scene
	cam *scene.Camera

	opts Options

	start      time.Time
	frameCount uint32
}

// Create a renderer for the given scene and camera.
func New(sc *scene.Scene, cam *scene.Camera, opts Options) (*Renderer, error) {
	if sc == nil {
		return nil, ErrSceneNotDefined
	}
	if cam == nil {
		return nil, ErrCameraNotDefined
	}
	opts.defaults()

	return &Renderer{
		logger: log.New("renderer"),
		sc:     sc,
		cam:    cam,
		opts:   opts,
		start:  time.Now(),
	}, nil
}

// Get the current frame counter.
func (r *Renderer) FrameCount() uint32 {
	return r.frameCount
}

// Advance to the next frame and return its index.
func (r *Renderer) NextFrame() uint32 {
	r.frameCount++
	return r.frameCount
}

// Select which of the two accumulation textures receives the current
// frame. The other one is sampled for display.
func (r *Renderer) AccumulationTarget() uint32 {
	return r.frameCount % 2
}

// Restart progressive accumulation. Must be invoked whenever the camera
// or scene state changes; the shader treats frame zero as a fresh start.
func (r *Renderer) ResetAccumulation() {
	r.frameCount = 0
}

// Translate the camera along its view direction and restart accumulation.
func (r *Renderer) Dolly(amount float32) {
	r.cam.Dolly(amount)
	r.ResetAccumulation()
}

// Translate the camera along its right vector and restart accumulation.
func (r *Renderer) Strafe(amount float32) {
	r.cam.Strafe(amount)
	r.ResetAccumulation()
}

// Translate the camera along its up vector and restart accumulation.
func (r *Renderer) Pedestal(amount float32) {
	r.cam.Pedestal(amount)
	r.ResetAccumulation()
}

// Rotate the camera about its up axis and restart accumulation.
func (r *Renderer) Pan(angle float32) {
	r.cam.Pan(angle)
	r.ResetAccumulation()
}

// Rotate the camera about its right axis and restart accumulation.
func (r *Renderer) Tilt(angle float32) {
	r.cam.Tilt(angle)
	r.ResetAccumulation()
}

// Apply a scene edit, rebuild the acceleration structure and restart
// accumulation. The edit callback may use any of the scene append
// operations; Build is invoked afterwards.
func (r *Renderer) EditScene(edit func(*scene.Scene) error) error {
	if err := edit(r.sc); err != nil {
		return err
	}
	if err := r.sc.Build(); err != nil {
		return err
	}
	r.ResetAccumulation()
	return nil
}

// Assemble the packed uniform buffer: camera block, frame block and
// scene block in that order. The frame block layout is
// {width, height, elapsed_seconds, frame_count, gamma, pad[3]}.
func (r *Renderer) Uniforms() ([]byte, error) {
	buf := make([]byte, 0, UniformPacketSize)

	camBlock, err := r.cam.MarshalBinary()
	if err != nil {
		return nil, err
	}
	buf = append(buf, camBlock...)

	frameBlock := make([]byte, FrameBlockSize)
	binary.LittleEndian.PutUint32(frameBlock[0:], r.opts.FrameW)
	binary.LittleEndian.PutUint32(frameBlock[4:], r.opts.FrameH)
	binary.LittleEndian.PutUint32(frameBlock[8:], math.Float32bits(float32(time.Since(r.start).Seconds())))
	binary.LittleEndian.PutUint32(frameBlock[12:], r.frameCount)
	binary.LittleEndian.PutUint32(frameBlock[16:], math.Float32bits(r.opts.Gamma))
	buf = append(buf, frameBlock...)

	sceneBlock, err := r.sc.MarshalBinary()
	if err != nil {
		return nil, err
	}
	buf = append(buf, sceneBlock...)

	return buf, nil
}

// Upload the current uniform state and trace one frame with the given
// tracer.
func (r *Renderer) RenderFrame(tracer Tracer) error {
	data, err := r.Uniforms()
	if err != nil {
		return err
	}
	if err = tracer.UploadUniforms(data); err != nil {
		return err
	}
	return tracer.Trace(r.NextFrame())
}
