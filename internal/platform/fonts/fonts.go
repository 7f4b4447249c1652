// Package fonts loads the TrueType faces used for document rendering and
// measures text in millimetres so layout and rendering agree on line widths.
package fonts

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// PointsToMM converts typographic points to millimetres.
const PointsToMM = 25.4 / 72

type faceKey struct {
	size float64
	bold bool
}

// Set holds a regular and a bold font plus a cache of sized faces.
// truetype faces are not safe for concurrent use, so every face access
// happens under mu.
type Set struct {
	regularTTF []byte
	boldTTF    []byte
	regular    *truetype.Font
	bold       *truetype.Font

	mu    sync.Mutex
	faces map[faceKey]font.Face
}

// Default returns the bundled Go fonts.
func Default() (*Set, error) {
	return FromBytes(goregular.TTF, gobold.TTF)
}

// FromFiles loads fonts from disk. An empty path falls back to the bundled
// font for that style.
func FromFiles(regularPath, boldPath string) (*Set, error) {
	regular, bold := goregular.TTF, gobold.TTF
	if p := strings.TrimSpace(regularPath); p != "" {
		b, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read font file: %w", err)
		}
		regular = b
	}
	if p := strings.TrimSpace(boldPath); p != "" {
		b, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read font file: %w", err)
		}
		bold = b
	}
	return FromBytes(regular, bold)
}

func FromBytes(regularTTF, boldTTF []byte) (*Set, error) {
	regular, err := truetype.Parse(regularTTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse regular TTF: %w", err)
	}
	bold, err := truetype.Parse(boldTTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse bold TTF: %w", err)
	}
	return &Set{
		regularTTF: regularTTF,
		boldTTF:    boldTTF,
		regular:    regular,
		bold:       bold,
		faces:      map[faceKey]font.Face{},
	}, nil
}

func (s *Set) RegularTTF() []byte { return s.regularTTF }
func (s *Set) BoldTTF() []byte    { return s.boldTTF }

// face must be called with mu held.
func (s *Set) face(size float64, bold bool) font.Face {
	k := faceKey{size: size, bold: bold}
	if f, ok := s.faces[k]; ok {
		return f
	}
	face := s.NewFace(size, bold)
	s.faces[k] = face
	return face
}

// NewFace returns an uncached face owned by the caller, for renderers that
// draw from several goroutines.
func (s *Set) NewFace(size float64, bold bool) font.Face {
	f := s.regular
	if bold {
		f = s.bold
	}
	return truetype.NewFace(f, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingNone})
}

// WithFace runs fn with a face of the given pixel size while holding the
// face lock.
func (s *Set) WithFace(size float64, bold bool, fn func(font.Face)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.face(size, bold))
}

// Width returns the advance width of text at a point size, in millimetres.
func (s *Set) Width(text string, pointSize float64, bold bool) float64 {
	if text == "" || pointSize <= 0 {
		return 0
	}
	var adv float64
	s.WithFace(pointSize, bold, func(f font.Face) {
		adv = float64(font.MeasureString(f, text)) / 64
	})
	return adv * PointsToMM
}

// Measure measures with the regular face. It has the signature the layout
// package expects.
func (s *Set) Measure(text string, pointSize float64) float64 {
	return s.Width(text, pointSize, false)
}
