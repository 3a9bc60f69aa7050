package render

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"

	"bubble-pop/internal/game"

	"github.com/fogleman/gg"
)

// Renderer draws board frames from immutable game snapshots.
// It never touches engine state directly, so a render can run concurrently
// with the tick loop without locking.
type Renderer struct {
	width        int
	height       int
	bubbleRadius float64
	fontPath     string
}

// NewRenderer sizes the frame to the playfield plus a HUD strip at the bottom.
func NewRenderer(fieldWidth, fieldHeight, bubbleRadius float64) *Renderer {
	return &Renderer{
		width:        int(fieldWidth),
		height:       int(fieldHeight) + 60, // HUD strip below the field
		bubbleRadius: bubbleRadius,
		fontPath:     findFontPath(),
	}
}

// Size returns the frame dimensions in pixels.
func (r *Renderer) Size() (width, height int) {
	return r.width, r.height
}

// RenderPNG draws a complete frame from the snapshot and encodes it as PNG.
func (r *Renderer) RenderPNG(w io.Writer, snap *game.GameSnapshot) error {
	dc := gg.NewContext(r.width, r.height)

	r.drawBackground(dc)
	r.drawBubbles(dc, snap.Bubbles)

	if snap.PathVisible && len(snap.AimPath) > 1 {
		r.drawAimPath(dc, snap)
	}

	if snap.HasShot {
		r.drawShot(dc, snap.Shot)
	}

	r.drawShooter(dc, snap)
	r.drawHUD(dc, snap)

	if snap.Status != game.StatusPlaying {
		r.drawStatusOverlay(dc, snap)
	}

	return dc.EncodePNG(w)
}

func (r *Renderer) drawBackground(dc *gg.Context) {
	// Single solid fill, cheap at any frame rate
	dc.SetColor(color.RGBA{12, 12, 28, 255})
	dc.DrawRectangle(0, 0, float64(r.width), float64(r.height))
	dc.Fill()

	// Sparse deterministic star field for depth
	dc.SetColor(color.RGBA{255, 255, 255, 50})
	for i := 0; i < 30; i++ {
		x := float64((i * 67) % r.width)
		y := float64((i * 47) % r.height)
		dc.DrawCircle(x, y, 1)
		dc.Fill()
	}

	// Danger line marking the bottom of the playfield
	fieldBottom := float64(r.height - 60)
	dc.SetColor(color.RGBA{255, 62, 62, 90})
	dc.SetLineWidth(2)
	dc.DrawLine(0, fieldBottom, float64(r.width), fieldBottom)
	dc.Stroke()
}

func (r *Renderer) drawBubbles(dc *gg.Context, bubbles []game.BubbleSnapshot) {
	for _, b := range bubbles {
		r.drawBubble(dc, b.X, b.Y, b.Color, b.IsPopping)
	}
}

func (r *Renderer) drawBubble(dc *gg.Context, x, y float64, hex string, popping bool) {
	radius := r.bubbleRadius

	// Shadow
	dc.SetColor(color.RGBA{0, 0, 0, 100})
	dc.DrawCircle(x, y+3, radius)
	dc.Fill()

	// Body
	body := parseHexColor(hex)
	if popping {
		// Popping bubbles flash brighter and slightly larger
		body = lighten(body, 70)
		radius += 2
	}
	dc.SetColor(body)
	dc.DrawCircle(x, y, radius)
	dc.Fill()

	// Highlight spot, top-left
	dc.SetColor(color.RGBA{255, 255, 255, 90})
	dc.DrawCircle(x-radius*0.35, y-radius*0.35, radius*0.3)
	dc.Fill()

	// Border
	dc.SetColor(color.White)
	dc.SetLineWidth(2)
	dc.DrawCircle(x, y, radius)
	dc.Stroke()
}

func (r *Renderer) drawAimPath(dc *gg.Context, snap *game.GameSnapshot) {
	dc.SetColor(color.RGBA{255, 255, 255, 120})
	dc.SetLineWidth(2)
	dc.SetDash(6, 8)
	for i := 1; i < len(snap.AimPath); i++ {
		a := snap.AimPath[i-1]
		b := snap.AimPath[i]
		dc.DrawLine(a.X, a.Y, b.X, b.Y)
		dc.Stroke()
	}
	dc.SetDash()

	// Mark the target cell
	goal := snap.AimPath[len(snap.AimPath)-1]
	dc.SetColor(color.RGBA{255, 255, 255, 60})
	dc.DrawCircle(goal.X, goal.Y, r.bubbleRadius)
	dc.Fill()
}

func (r *Renderer) drawShot(dc *gg.Context, shot game.ShotSnapshot) {
	// Motion trail behind the projectile
	dc.SetColor(color.RGBA{255, 255, 255, 40})
	dc.DrawCircle(shot.X-shot.VX*0.6, shot.Y-shot.VY*0.6, r.bubbleRadius*0.7)
	dc.Fill()

	r.drawBubble(dc, shot.X, shot.Y, shot.Color, false)
}

func (r *Renderer) drawShooter(dc *gg.Context, snap *game.GameSnapshot) {
	cx := float64(r.width) / 2
	cy := float64(r.height-60) - r.bubbleRadius

	// Launcher base
	dc.SetColor(color.RGBA{51, 51, 51, 255})
	dc.DrawCircle(cx, cy, r.bubbleRadius+6)
	dc.Fill()

	// Loaded bubble (hidden while its shot is in flight)
	if !snap.HasShot {
		r.drawBubble(dc, cx, cy, snap.CurrentColor, false)
	}

	// Next bubble preview, smaller, to the right
	nx := cx + r.bubbleRadius*3
	dc.SetColor(parseHexColor(snap.NextColor))
	dc.DrawCircle(nx, cy, r.bubbleRadius*0.6)
	dc.Fill()
	dc.SetColor(color.White)
	dc.SetLineWidth(1.5)
	dc.DrawCircle(nx, cy, r.bubbleRadius*0.6)
	dc.Stroke()
}

func (r *Renderer) drawHUD(dc *gg.Context, snap *game.GameSnapshot) {
	top := float64(r.height - 52)

	dc.SetColor(color.RGBA{255, 255, 255, 230})
	if r.fontPath != "" {
		if err := dc.LoadFontFace(r.fontPath, 16); err != nil {
			return
		}
	}

	dc.DrawStringAnchored(fmt.Sprintf("SCORE %d", snap.Score), 12, top, 0, 0.5)
	dc.DrawStringAnchored(fmt.Sprintf("LEVEL %d", snap.Level), float64(r.width)/2, top, 0.5, 0.5)
	dc.DrawStringAnchored(fmt.Sprintf("DROP IN %d", snap.ShotsUntilDrop), float64(r.width)-12, top, 1, 0.5)

	if snap.AIMode {
		dc.SetColor(color.RGBA{83, 255, 69, 255})
		dc.DrawStringAnchored("AUTO", 12, top+24, 0, 0.5)
	}
	if snap.Paused {
		dc.SetColor(color.RGBA{255, 149, 0, 255})
		dc.DrawStringAnchored("PAUSED", float64(r.width)-12, top+24, 1, 0.5)
	}
}

func (r *Renderer) drawStatusOverlay(dc *gg.Context, snap *game.GameSnapshot) {
	dc.SetColor(color.RGBA{0, 0, 0, 150})
	dc.DrawRectangle(0, 0, float64(r.width), float64(r.height))
	dc.Fill()

	label := "GAME OVER"
	tint := color.RGBA{255, 62, 62, 255}
	if snap.Status == game.StatusLevelComplete {
		label = "LEVEL COMPLETE"
		tint = color.RGBA{83, 255, 69, 255}
	}

	dc.SetColor(tint)
	if r.fontPath != "" {
		if err := dc.LoadFontFace(r.fontPath, 32); err != nil {
			return
		}
	}
	dc.DrawStringAnchored(label, float64(r.width)/2, float64(r.height)/2, 0.5, 0.5)
}

func parseHexColor(hex string) color.RGBA {
	if len(hex) != 7 || hex[0] != '#' {
		return color.RGBA{255, 255, 255, 255}
	}

	var r, g, b uint8
	fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b)
	return color.RGBA{r, g, b, 255}
}

func lighten(c color.RGBA, amount uint8) color.RGBA {
	add := func(v, a uint8) uint8 {
		if int(v)+int(a) > 255 {
			return 255
		}
		return v + a
	}
	return color.RGBA{add(c.R, amount), add(c.G, amount), add(c.B, amount), c.A}
}

func findFontPath() string {
	paths := []string{
		"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
		"/System/Library/Fonts/Helvetica.ttc",
		"C:\\Windows\\Fonts\\arial.ttf",
	}

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	matches, _ := filepath.Glob("*.ttf")
	if len(matches) > 0 {
		return matches[0]
	}

	return ""
}
