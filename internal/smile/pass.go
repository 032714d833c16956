package smile

import "image"

// Pass pairs the face and smile cascades.
type Pass struct {
	faces          Detector
	smiles         Detector
	smileThreshold int
}

// NewPass builds a pass. smileThreshold is the smile cascade's minimum
// neighbour count.
func NewPass(faces, smiles Detector, smileThreshold int) *Pass {
	return &Pass{faces: faces, smiles: smiles, smileThreshold: smileThreshold}
}

// Run detects faces, then smiles within each face box, and returns an
// annotated clone of frame. The input frame is left untouched. The caller
// owns the returned frame.
func (p *Pass) Run(frame Frame) (Frame, Result) {
	gray := frame.Grayscale()
	defer gray.Close()

	res := p.Detect(gray)

	annotated := frame.Clone()
	Annotate(annotated, res)
	return annotated, res
}

// Detect runs both cascades over gray without drawing anything.
func (p *Pass) Detect(gray Gray) Result {
	var res Result
	smileParams := SmileParams(p.smileThreshold)

	for _, box := range p.faces.Detect(gray, gray.Bounds(), FaceParams) {
		face := Face{Box: box}
		// The whole face box is the region of interest, not just its lower half.
		for _, s := range p.smiles.Detect(gray, box, smileParams) {
			face.Smiles = append(face.Smiles, s.Add(box.Min))
		}
		if face.Smiling() {
			res.Smiling = true
		}
		res.Faces = append(res.Faces, face)
	}
	return res
}

// Annotate draws face boxes, smile boxes and labels onto frame.
func Annotate(frame Frame, res Result) {
	for _, f := range res.Faces {
		frame.Rectangle(f.Box, FaceColor, 2)
		for _, s := range f.Smiles {
			frame.Rectangle(s, SmileColor, 2)
		}

		c := FaceColor
		if f.Smiling() {
			c = SmileColor
		}
		frame.Text(f.Label(), image.Pt(f.Box.Min.X, f.Box.Min.Y-10), 0.9, c, 2)
	}
}
