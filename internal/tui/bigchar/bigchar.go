// Package bigchar renders Chinese characters as large block art using half-block characters.
package bigchar

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// DefaultFontPaths are tried in order when no font is configured.
var DefaultFontPaths = []string{
	// macOS
	"/System/Library/Fonts/STHeiti Light.ttc",
	"/System/Library/Fonts/PingFang.ttc",
	"/System/Library/Fonts/Hiragino Sans GB.ttc",
	"/Library/Fonts/Arial Unicode.ttf",
	// Linux
	"/usr/share/fonts/opentype/noto/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/noto-cjk/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/truetype/noto/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/truetype/droid/DroidSansFallbackFull.ttf",
	// Windows
	"C:\\Windows\\Fonts\\msyh.ttc",
	"C:\\Windows\\Fonts\\simsun.ttc",
}

// threshold is the gray level above which a half cell is drawn.
const threshold = uint8(40)

// Renderer draws characters with one font face and caches the output.
// A Renderer without a face renders nothing.
type Renderer struct {
	face font.Face

	mu    sync.Mutex
	cache map[string]string
}

// New loads the first usable font among paths. The configured font, if any,
// should come first. It never fails; check Available.
func New(paths ...string) *Renderer {
	r := &Renderer{cache: make(map[string]string)}
	for _, path := range paths {
		if path == "" {
			continue
		}
		if face, err := loadFace(path); err == nil {
			r.face = face
			break
		}
	}
	return r
}

func loadFace(path string) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	opts := &opentype.FaceOptions{Size: 64, DPI: 72}

	// Try parsing as font collection first
	if coll, err := opentype.ParseCollection(data); err == nil && coll.NumFonts() > 0 {
		if fnt, err := coll.Font(0); err == nil {
			return opentype.NewFace(fnt, opts)
		}
	}

	fnt, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing font %s: %w", path, err)
	}
	return opentype.NewFace(fnt, opts)
}

// Available reports whether a CJK font was found.
func (r *Renderer) Available() bool {
	return r != nil && r.face != nil
}

// Render returns the cached art for char, drawing it on first use.
// cols and rows are the output size in terminal cells.
func (r *Renderer) Render(char string, cols, rows int) string {
	if !r.Available() || char == "" || cols <= 0 || rows <= 0 {
		return ""
	}

	key := fmt.Sprintf("%s/%dx%d", char, cols, rows)

	r.mu.Lock()
	defer r.mu.Unlock()
	if cached, ok := r.cache[key]; ok {
		return cached
	}

	rendered := r.draw(char, cols, rows)
	r.cache[key] = rendered
	return rendered
}

// draw must be called with mu held; font.Face is not safe for concurrent use.
func (r *Renderer) draw(char string, cols, rows int) string {
	c := []rune(char)[0]

	bounds, _, _ := r.face.GlyphBounds(c)
	glyphWidth := (bounds.Max.X - bounds.Min.X).Ceil()
	glyphHeight := (bounds.Max.Y - bounds.Min.Y).Ceil()

	padding := 4
	srcWidth := max(glyphWidth+padding*2, 64)
	srcHeight := max(glyphHeight+padding*2, 64)

	src := image.NewGray(image.Rect(0, 0, srcWidth, srcHeight))
	draw.Draw(src, src.Bounds(), &image.Uniform{color.Black}, image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  src,
		Src:  image.White,
		Face: r.face,
		Dot:  fixed.P((srcWidth-glyphWidth)/2, srcHeight-padding-bounds.Max.Y.Ceil()),
	}
	d.DrawString(string(c))

	// Two pixel rows per cell.
	return halfBlocks(scaleDown(src, cols, rows*2), cols, rows)
}

// scaleDown scales a grayscale image using area averaging.
func scaleDown(src *image.Gray, dstWidth, dstHeight int) *image.Gray {
	srcWidth := src.Bounds().Max.X
	srcHeight := src.Bounds().Max.Y

	dst := image.NewGray(image.Rect(0, 0, dstWidth, dstHeight))

	xRatio := float64(srcWidth) / float64(dstWidth)
	yRatio := float64(srcHeight) / float64(dstHeight)

	for dy := 0; dy < dstHeight; dy++ {
		for dx := 0; dx < dstWidth; dx++ {
			sx1 := int(float64(dx) * xRatio)
			sy1 := int(float64(dy) * yRatio)
			sx2 := min(int(float64(dx+1)*xRatio), srcWidth)
			sy2 := min(int(float64(dy+1)*yRatio), srcHeight)

			var sum, count int
			for sy := sy1; sy < sy2; sy++ {
				for sx := sx1; sx < sx2; sx++ {
					sum += int(src.GrayAt(sx, sy).Y)
					count++
				}
			}
			if count > 0 {
				dst.SetGray(dx, dy, color.Gray{Y: uint8(sum / count)})
			}
		}
	}
	return dst
}

// halfBlocks converts a grayscale image to ▀▄█ art.
func halfBlocks(img *image.Gray, cols, rows int) string {
	var sb strings.Builder
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			top := brightness(img, col, row*2) > threshold
			bottom := brightness(img, col, row*2+1) > threshold

			switch {
			case top && bottom:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bottom:
				sb.WriteRune('▄')
			default:
				sb.WriteRune(' ')
			}
		}
		if row < rows-1 {
			sb.WriteRune('\n')
		}
	}
	return sb.String()
}

func brightness(img *image.Gray, x, y int) uint8 {
	b := img.Bounds()
	if x < 0 || y < 0 || x >= b.Max.X || y >= b.Max.Y {
		return 0
	}
	return img.GrayAt(x, y).Y
}
