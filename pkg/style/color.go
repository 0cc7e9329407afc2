package style

import (
	"fmt"
	"image/color"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"

	"github.com/matzehuels/treesvg/pkg/errors"
)

// Color is a resolved RGB color. Every accepted notation normalizes to the
// same Color, so `red`, `#f00`, `rgb(255,0,0)` and `rgb(100%,0%,0%)` compare
// equal.
type Color struct {
	R, G, B uint8
}

var (
	hexRe        = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
	rgbValueRe   = regexp.MustCompile(`(?i)^rgb\(\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)\s*\)$`)
	rgbPercentRe = regexp.MustCompile(`(?i)^rgb\(\s*(\d+(?:\.\d*)?|\.\d+)\s*%\s*,\s*(\d+(?:\.\d*)?|\.\d+)\s*%\s*,\s*(\d+(?:\.\d*)?|\.\d+)\s*%\s*\)$`)
)

const colorExamples = "ex: 'green', '#aa8ef7', '#f00', 'rgb(122,17,234)', 'rgb(23%,5%,100%)'"

// ParseColor resolves a color token. The accepted forms are tried in order:
// a named SVG keyword (case-insensitive), #rgb or #rrggbb hex, rgb() with
// integer channels in [0, 255], and rgb() with percentage channels in
// [0, 100].
func ParseColor(token string) (Color, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Color{}, errors.New(errors.ErrCodeInvalidStyle, "empty color (%s)", colorExamples)
	}

	if c, ok := colornames.Map[strings.ToLower(token)]; ok {
		return Color{R: c.R, G: c.G, B: c.B}, nil
	}

	if m := hexRe.FindStringSubmatch(token); m != nil {
		return parseHex(m[1]), nil
	}

	if m := rgbValueRe.FindStringSubmatch(token); m != nil {
		var ch [3]uint8
		for i, s := range m[1:] {
			v, err := strconv.Atoi(s)
			if err != nil || v > 255 {
				return Color{}, errors.New(errors.ErrCodeInvalidStyle, "channel %s in %q out of range [0, 255]", s, token)
			}
			ch[i] = uint8(v)
		}
		return Color{R: ch[0], G: ch[1], B: ch[2]}, nil
	}

	if m := rgbPercentRe.FindStringSubmatch(token); m != nil {
		var ch [3]float64
		for i, s := range m[1:] {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil || v > 100 {
				return Color{}, errors.New(errors.ErrCodeInvalidStyle, "channel %s%% in %q out of range [0, 100]", s, token)
			}
			ch[i] = v / 100
		}
		r, g, b := colorful.Color{R: ch[0], G: ch[1], B: ch[2]}.RGB255()
		return Color{R: r, G: g, B: b}, nil
	}

	return Color{}, errors.New(errors.ErrCodeInvalidStyle, "incorrect color %q (%s)", token, colorExamples)
}

func parseHex(digits string) Color {
	if len(digits) == 3 {
		digits = strings.Repeat(digits[0:1], 2) + strings.Repeat(digits[1:2], 2) + strings.Repeat(digits[2:3], 2)
	}
	v, _ := strconv.ParseUint(digits, 16, 32)
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
}

// Hex returns the canonical #rrggbb form.
func (c Color) Hex() string {
	return c.colorful().Hex()
}

// RGB returns the color in rgb(r,g,b) notation.
func (c Color) RGB() string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

// RGBA converts to the standard library color type.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// Blend linearly interpolates between c and o in RGB space; t=0 yields c and
// t=1 yields o.
func (c Color) Blend(o Color, t float64) Color {
	r, g, b := c.colorful().BlendRgb(o.colorful(), t).Clamped().RGB255()
	return Color{R: r, G: g, B: b}
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// Names returns the named color catalog (the SVG 1.1 color keywords) in
// alphabetical order.
func Names() []string {
	return append([]string(nil), colornames.Names...)
}

// IsNamed reports whether token is a color keyword of the catalog.
func IsNamed(token string) bool {
	_, ok := colornames.Map[strings.ToLower(strings.TrimSpace(token))]
	return ok
}

var colorIDReplacer = strings.NewReplacer(
	"#", "", ")", "", " ", "", "\t", "", "\n", "", "\r", "",
	"(", ".", ",", ".",
	"%", "p",
)

// colorID turns a written color notation into a string usable inside an XML
// Name: `#aa8ef7` becomes `aa8ef7`, `rgb(122,17,234)` becomes
// `rgb.122.17.234` and `rgb( 23%, 5 %, 100% )` becomes `rgb.23p.5p.100p`.
func colorID(source string) string {
	return colorIDReplacer.Replace(source)
}
