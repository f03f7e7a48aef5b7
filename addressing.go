package texview

// Offset returns the byte offset of the first block of (layer, face, level)
// in s: all earlier layers, then all earlier faces of that layer, then all
// earlier levels of that face.
func Offset(s *Storage, layer, face, level int) int {
	layerBytes := s.LayerSize(0, s.Faces()-1, 0, s.Levels()-1)
	faceBytes := s.FaceSize(0, s.Levels()-1)
	levelBytes := 0
	if level > 0 {
		levelBytes = s.FaceSize(0, level-1)
	}

	return layer*layerBytes + face*faceBytes + levelBytes
}

// span returns the bytes of s from the first block addressed by v to the
// last one. Capacity is capped so appends never reach neighbouring data.
func span(s *Storage, v View) []byte {
	begin := Offset(s, v.BaseLayer, v.BaseFace, v.BaseLevel)
	end := Offset(s, v.MaxLayer, v.MaxFace, v.MaxLevel) + s.LevelSize(v.MaxLevel)

	return s.Data()[begin:end:end]
}

// faceRegion returns the contiguous bytes of levels v.BaseLevel..v.MaxLevel
// of one face.
func faceRegion(s *Storage, layer, face int, v View) []byte {
	begin := Offset(s, layer, face, v.BaseLevel)
	end := begin + s.FaceSize(v.BaseLevel, v.MaxLevel)

	return s.Data()[begin:end:end]
}

// fill writes pattern repeatedly over dst. An empty pattern zeroes dst.
func fill(dst, pattern []byte) {
	if len(pattern) == 0 {
		clear(dst)
		return
	}
	if len(dst) == 0 {
		return
	}
	n := copy(dst, pattern)
	for n < len(dst) {
		n += copy(dst[n:], dst[:n])
	}
}
