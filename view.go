package texview

import "fmt"

// View is an inclusive range of layers, faces and levels in the index space
// of a Storage. Views are plain values; copying one is cheap.
type View struct {
	BaseLayer int
	MaxLayer  int
	BaseFace  int
	MaxFace   int
	BaseLevel int
	MaxLevel  int
}

// FullView returns the view covering all of s.
func FullView(s *Storage) View {
	return View{
		BaseLayer: 0,
		MaxLayer:  s.Layers() - 1,
		BaseFace:  0,
		MaxFace:   s.Faces() - 1,
		BaseLevel: 0,
		MaxLevel:  s.Levels() - 1,
	}
}

// Layers returns the number of layers in the view.
func (v View) Layers() int { return v.MaxLayer - v.BaseLayer + 1 }

// Faces returns the number of faces in the view.
func (v View) Faces() int { return v.MaxFace - v.BaseFace + 1 }

// Levels returns the number of levels in the view.
func (v View) Levels() int { return v.MaxLevel - v.BaseLevel + 1 }

// Within reports whether every index of v is also inside parent.
func (v View) Within(parent View) bool {
	return v.ordered() &&
		v.BaseLayer >= parent.BaseLayer && v.MaxLayer <= parent.MaxLayer &&
		v.BaseFace >= parent.BaseFace && v.MaxFace <= parent.MaxFace &&
		v.BaseLevel >= parent.BaseLevel && v.MaxLevel <= parent.MaxLevel
}

// Validate checks that v is well ordered and lies inside s.
func (v View) Validate(s *Storage) error {
	if s.Empty() {
		return violation(ErrEmptyTexture, "view %s has no storage", v)
	}
	if !v.Within(FullView(s)) {
		return violation(ErrViewOutOfRange, "view %s outside storage %s", v, FullView(s))
	}

	return nil
}

func (v View) ordered() bool {
	return v.BaseLayer >= 0 && v.BaseLayer <= v.MaxLayer &&
		v.BaseFace >= 0 && v.BaseFace <= v.MaxFace &&
		v.BaseLevel >= 0 && v.BaseLevel <= v.MaxLevel
}

// String formats the view as layers/faces/levels ranges.
func (v View) String() string {
	return fmt.Sprintf("{layers %d..%d, faces %d..%d, levels %d..%d}",
		v.BaseLayer, v.MaxLayer, v.BaseFace, v.MaxFace, v.BaseLevel, v.MaxLevel)
}

// derive builds a child view whose ranges are offsets relative to v and
// checks the result stays inside v.
func (v View) derive(baseLayer, maxLayer, baseFace, maxFace, baseLevel, maxLevel int) (View, error) {
	child := View{
		BaseLayer: v.BaseLayer + baseLayer,
		MaxLayer:  v.BaseLayer + maxLayer,
		BaseFace:  v.BaseFace + baseFace,
		MaxFace:   v.BaseFace + maxFace,
		BaseLevel: v.BaseLevel + baseLevel,
		MaxLevel:  v.BaseLevel + maxLevel,
	}
	if baseLayer < 0 || baseFace < 0 || baseLevel < 0 || !child.Within(v) {
		return View{}, violation(ErrViewOutOfRange, "%s not inside parent %s", child, v)
	}

	return child, nil
}
