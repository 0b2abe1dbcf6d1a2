package services

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"

	"github.com/mmoslabs/mmos-backend/internal/logger"
	"github.com/mmoslabs/mmos-backend/internal/utils"
)

const (
	coverWidth  = 600
	coverHeight = 900
)

// coverPalette mirrors the dashboard's tile colors; the title hash picks
// one so the same book always renders the same placeholder.
var coverPalette = []color.NRGBA{
	{R: 0x1f, G: 0x6f, B: 0x8b, A: 0xff},
	{R: 0x8b, G: 0x3a, B: 0x62, A: 0xff},
	{R: 0x2d, G: 0x6a, B: 0x4f, A: 0xff},
	{R: 0x7f, G: 0x4f, B: 0x24, A: 0xff},
	{R: 0x3d, G: 0x40, B: 0x5b, A: 0xff},
	{R: 0x6b, G: 0x2d, B: 0x5b, A: 0xff},
}

// CoverService renders deterministic placeholder covers for books that
// have no cover in any language, so the dashboard grid never shows holes.
type CoverService interface {
	PlaceholderURL(title string) string
}

type coverService struct {
	log      *logger.Logger
	mediaDir string
	baseURL  string
	fontFace font.Face
}

func NewCoverService(baseLog *logger.Logger) (CoverService, error) {
	serviceLog := baseLog.With("service", "CoverService")

	mediaDir := utils.GetEnv("MEDIA_DIR", "media", baseLog)
	coverDir := filepath.Join(mediaDir, "covers")
	if err := os.MkdirAll(coverDir, 0o755); err != nil {
		return nil, fmt.Errorf("could not create cover dir: %w", err)
	}
	baseURL := strings.TrimRight(utils.GetEnv("MEDIA_BASE_URL", "/media", baseLog), "/")

	parsed, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("could not parse cover font: %w", err)
	}
	face := truetype.NewFace(parsed, &truetype.Options{Size: 220})

	return &coverService{
		log:      serviceLog,
		mediaDir: mediaDir,
		baseURL:  baseURL,
		fontFace: face,
	}, nil
}

// PlaceholderURL returns the URL of the placeholder for title, rendering
// it on first use. Failures log and return "" — a missing cover is a
// blank tile, never a failed dashboard.
func (s *coverService) PlaceholderURL(title string) string {
	name := coverFileName(title)
	path := filepath.Join(s.mediaDir, "covers", name)
	url := s.baseURL + "/covers/" + name

	if _, err := os.Stat(path); err == nil {
		return url
	}
	if err := s.render(title, path); err != nil {
		s.log.Warn("placeholder cover render failed", "error", err, "title", title)
		return ""
	}
	return url
}

func (s *coverService) render(title, path string) error {
	dc := gg.NewContext(coverWidth, coverHeight)
	bg := coverPalette[int(titleHash(title)[0])%len(coverPalette)]
	dc.SetColor(bg)
	dc.Clear()

	dc.SetFontFace(s.fontFace)
	dc.SetRGB(1, 1, 1)
	dc.DrawStringAnchored(titleInitials(title), coverWidth/2, coverHeight/2, 0.5, 0.5)

	return dc.SavePNG(path)
}

// titleInitials takes the first letter of the first two words.
func titleInitials(title string) string {
	var initials []rune
	for _, word := range strings.Fields(title) {
		for _, r := range word {
			if unicode.IsLetter(r) || unicode.IsNumber(r) {
				initials = append(initials, unicode.ToUpper(r))
			}
			break
		}
		if len(initials) == 2 {
			break
		}
	}
	if len(initials) == 0 {
		return "?"
	}
	return string(initials)
}

func titleHash(title string) []byte {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(title))))
	return sum[:]
}

func coverFileName(title string) string {
	return hex.EncodeToString(titleHash(title))[:16] + ".png"
}
