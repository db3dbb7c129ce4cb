// gentitles renders the chapter title cards shown during chapter
// transitions. Run with:
//
//	go run ./cmd/gentitles
//
// Output lands in assets/titles/<chapter>.png; the desktop client falls
// back to plain text when a card is missing, so regenerating is optional.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"

	"github.com/redshift-arcade/ascent/internal/game"
)

const (
	cardWidth  = 640
	cardHeight = 360
)

type palette struct {
	top    color.RGBA
	bottom color.RGBA
	accent color.RGBA
}

// Sky colours per chapter, darkening as the climb leaves the atmosphere.
var palettes = map[game.ChapterID]palette{
	game.ChapterEarth:        {top: rgb(0x26, 0x52, 0x38), bottom: rgb(0x10, 0x20, 0x16), accent: rgb(0x8F, 0xD6, 0xA4)},
	game.ChapterSky:          {top: rgb(0x30, 0x62, 0x94), bottom: rgb(0x12, 0x22, 0x38), accent: rgb(0xA8, 0xD4, 0xF2)},
	game.ChapterStratosphere: {top: rgb(0x26, 0x30, 0x62), bottom: rgb(0x0C, 0x10, 0x24), accent: rgb(0xB4, 0xBC, 0xF0)},
	game.ChapterOrbit:        {top: rgb(0x14, 0x14, 0x2A), bottom: rgb(0x05, 0x05, 0x10), accent: rgb(0xD8, 0xD8, 0xE8)},
	game.ChapterMars:         {top: rgb(0x58, 0x28, 0x1C), bottom: rgb(0x1E, 0x0C, 0x08), accent: rgb(0xF0, 0xA8, 0x86)},
}

func main() {
	var (
		outDir string
		force  bool
	)
	flag.StringVar(&outDir, "out", filepath.Join("assets", "titles"), "output directory")
	flag.BoolVar(&force, "force", false, "regenerate cards even if PNGs exist")
	flag.Parse()

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fatal(err)
	}

	for _, span := range game.ChapterTable {
		path := filepath.Join(outDir, string(span.Chapter)+".png")
		if !force {
			if _, err := os.Stat(path); err == nil {
				fmt.Printf("skip %s (exists)\n", path)
				continue
			}
		}
		if err := renderCard(span).SavePNG(path); err != nil {
			fatal(err)
		}
		fmt.Printf("wrote %s\n", path)
	}
}

func renderCard(span game.ChapterSpan) *gg.Context {
	dc := gg.NewContext(cardWidth, cardHeight)
	pal := palettes[span.Chapter]

	grad := gg.NewLinearGradient(0, 0, 0, cardHeight)
	grad.AddColorStop(0, pal.top)
	grad.AddColorStop(1, pal.bottom)
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, cardWidth, cardHeight)
	dc.Fill()

	// Star field, denser for the upper chapters. Seeded per chapter so
	// regeneration is stable.
	rng := rand.New(rand.NewSource(int64(span.First)))
	stars := span.First * 3
	for i := 0; i < stars; i++ {
		x := rng.Float64() * cardWidth
		y := rng.Float64() * cardHeight * 0.7
		r := 0.6 + rng.Float64()
		dc.SetRGBA(1, 1, 1, 0.25+rng.Float64()*0.5)
		dc.DrawCircle(x, y, r)
		dc.Fill()
	}

	// Accent rule above and below the title block.
	dc.SetColor(pal.accent)
	dc.DrawRectangle(cardWidth/2-120, cardHeight/2-48, 240, 2)
	dc.DrawRectangle(cardWidth/2-120, cardHeight/2+46, 240, 2)
	dc.Fill()

	dc.SetRGB(0.95, 0.95, 0.95)
	dc.DrawStringAnchored(span.Chapter.Title(), cardWidth/2, cardHeight/2-16, 0.5, 0.5)
	dc.SetColor(pal.accent)
	dc.DrawStringAnchored(fmt.Sprintf("Levels %d - %d", span.First, span.Last),
		cardWidth/2, cardHeight/2+16, 0.5, 0.5)

	return dc
}

func rgb(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
