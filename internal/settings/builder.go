package settings

// Builder assembles Adjustments from individual control values
type Builder struct {
	adj Adjustments
}

func NewBuilder() *Builder {
	return &Builder{adj: Default()}
}

// From starts a builder seeded with existing adjustments
func From(adj Adjustments) *Builder {
	return &Builder{adj: adj}
}

func (b *Builder) Grayscale(on bool) *Builder {
	b.adj.Grayscale = on
	return b
}

func (b *Builder) Invert(on bool) *Builder {
	b.adj.Invert = on
	return b
}

func (b *Builder) FlipVertical(on bool) *Builder {
	b.adj.FlipVertical = on
	return b
}

func (b *Builder) FlipHorizontal(on bool) *Builder {
	b.adj.FlipHorizontal = on
	return b
}

func (b *Builder) FaceOverlay(on bool) *Builder {
	b.adj.FaceOverlay = on
	return b
}

func (b *Builder) Brightness(level int) *Builder {
	b.adj.Brightness = level
	return b
}

func (b *Builder) Contrast(level int) *Builder {
	b.adj.Contrast = level
	return b
}

// Build returns the normalized value
func (b *Builder) Build() Adjustments {
	return b.adj.Normalize()
}
