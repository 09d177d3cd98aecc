package renderer

type Options struct {
	// Frame dims.
	FrameW uint32
	FrameH uint32

	// Gamma correction applied by the display pass.
	Gamma float32
}

// Fill in defaults for unset options.
func (o *Options) defaults() {
	if o.Gamma == 0 {
		o.Gamma = 2.2
	}
}
