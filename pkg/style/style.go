package style

import (
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/treesvg/pkg/errors"
)

// MaxSize is the largest accepted node radius in pixels.
const MaxSize = 100.0

// DefaultDescriptor is the style given to nodes created without one.
const DefaultDescriptor = "blue@12"

const descriptorExamples = "ex: 'green@12', '#aa8ef7@3', '#f00@38', 'rgb(122,17,234)@7', 'rgb(23%,5%,100%)@10'"

// Style is a validated color and size pair. The zero value is not a usable
// style; construct one with [Parse], [New] or [Default].
type Style struct {
	// Color is the resolved color used for emission and comparisons.
	Color Color
	// Source is the color notation as written (named keywords lowercased).
	Source string
	// Size is the node radius in pixels, in (0, MaxSize].
	Size float64
}

var defaultStyle = MustParse(DefaultDescriptor)

// Default returns the process-wide default style (blue@12).
func Default() Style { return defaultStyle }

// Parse resolves a `<color>@<size>` descriptor. The descriptor is split at
// its last '@'.
func Parse(descriptor string) (Style, error) {
	if err := errors.ValidateDescriptor(descriptor); err != nil {
		return Style{}, err
	}
	i := strings.LastIndex(descriptor, "@")
	if i < 0 {
		return Style{}, errors.New(errors.ErrCodeInvalidStyle,
			"incorrect style %q, expected <color>@<size> (%s)", descriptor, descriptorExamples)
	}
	colorToken, sizeToken := strings.TrimSpace(descriptor[:i]), strings.TrimSpace(descriptor[i+1:])
	if sizeToken == "" {
		return Style{}, errors.New(errors.ErrCodeInvalidStyle, "missing size in style %q (%s)", descriptor, descriptorExamples)
	}
	size, err := strconv.ParseFloat(sizeToken, 64)
	if err != nil {
		return Style{}, errors.New(errors.ErrCodeInvalidStyle, "size %q is not a number", sizeToken)
	}
	return New(colorToken, size)
}

// New builds a Style from a color token and a size.
func New(colorToken string, size float64) (Style, error) {
	if err := validateSize(size); err != nil {
		return Style{}, err
	}
	c, err := ParseColor(colorToken)
	if err != nil {
		return Style{}, err
	}
	source := strings.TrimSpace(colorToken)
	if IsNamed(source) {
		source = strings.ToLower(source)
	}
	return Style{Color: c, Source: source, Size: size}, nil
}

// MustParse is like Parse but panics on error. It is meant for constants and
// tests.
func MustParse(descriptor string) Style {
	s, err := Parse(descriptor)
	if err != nil {
		panic(err)
	}
	return s
}

func validateSize(size float64) error {
	if math.IsNaN(size) || math.IsInf(size, 0) {
		return errors.New(errors.ErrCodeInvalidStyle, "size must be a finite number")
	}
	if size <= 0 || size > MaxSize {
		return errors.New(errors.ErrCodeInvalidStyle, "size %v out of range (0, %v]", size, MaxSize)
	}
	return nil
}

// String returns the descriptor form, which parses back to an equal Style.
func (s Style) String() string {
	return s.Source + "@" + strconv.FormatFloat(s.Size, 'f', -1, 64)
}

// ColorID returns an XML-Name-safe identifier for the written color, used to
// name gradient definitions.
func (s Style) ColorID() string {
	return colorID(s.Source)
}

// IsZero reports whether s is the zero value (never returned by a
// successful constructor).
func (s Style) IsZero() bool {
	return s == Style{}
}

// MarshalText implements encoding.TextMarshaler using the descriptor form.
func (s Style) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler via [Parse].
func (s *Style) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
