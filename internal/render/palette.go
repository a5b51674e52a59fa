package render

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"
)

// Brightness ramp for colourless terminals, darkest to brightest.
const asciiRamp = " .:-=+*#%@"

// ColorMode describes how colours are emitted.
type ColorMode uint8

const (
	ColorOff     ColorMode = iota // NO_COLOR or dumb terminal
	ColorANSI16                   // basic 16-colour
	ColorANSI256                  // 256-colour cube
	ColorTrue                     // 24-bit truecolour
)

func (m ColorMode) String() string {
	switch m {
	case ColorANSI16:
		return "16"
	case ColorANSI256:
		return "256"
	case ColorTrue:
		return "true"
	default:
		return "none"
	}
}

// ParseColorMode maps a config value to a mode. "auto" and "" detect the
// terminal.
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return DetectColorMode(), nil
	case "none", "off":
		return ColorOff, nil
	case "16":
		return ColorANSI16, nil
	case "256":
		return ColorANSI256, nil
	case "true", "truecolor", "24bit":
		return ColorTrue, nil
	}
	return ColorOff, fmt.Errorf("unknown color mode %q (want auto, none, 16, 256 or true)", s)
}

var (
	detectOnce sync.Once
	termColor  ColorMode
)

// DetectColorMode inspects the environment once per process.
func DetectColorMode() ColorMode {
	detectOnce.Do(func() {
		termColor = colorModeFromEnv(os.Getenv)
	})
	return termColor
}

func colorModeFromEnv(getenv func(string) string) ColorMode {
	if getenv("NO_COLOR") != "" {
		return ColorOff
	}
	term := strings.ToLower(getenv("TERM"))
	ct := strings.ToLower(getenv("COLORTERM"))
	switch {
	case strings.Contains(ct, "truecolor"), strings.Contains(ct, "24bit"):
		return ColorTrue
	case strings.Contains(term, "256color"):
		return ColorANSI256
	case term == "dumb":
		return ColorOff
	case term == "" && runtime.GOOS == "windows":
		return ColorANSI16
	case term == "":
		return ColorOff
	default:
		return ColorANSI16
	}
}

func brightnessChar(lum uint8) byte {
	return asciiRamp[int(lum)*(len(asciiRamp)-1)/255]
}

// luminance is ITU-R BT.601 perceived brightness in integer math.
func luminance(r, g, b uint8) uint8 {
	return uint8((299*int(r) + 587*int(g) + 114*int(b)) / 1000)
}

// colorSeq returns the escape selecting an RGB colour as foreground
// (base 38) or background (base 48).
func colorSeq(mode ColorMode, base int, r, g, b uint8) string {
	switch mode {
	case ColorTrue:
		return fmt.Sprintf("\x1b[%d;2;%d;%d;%dm", base, r, g, b)
	case ColorANSI256:
		idx := 16 + 36*(int(r)*5/255) + 6*(int(g)*5/255) + int(b)*5/255
		return fmt.Sprintf("\x1b[%d;5;%dm", base, idx)
	case ColorANSI16:
		i := nearestANSI16(r, g, b)
		code := base - 8 + i // 30..37 / 40..47
		if i >= 8 {
			code = base + 52 + i - 8 // 90..97 / 100..107
		}
		return fmt.Sprintf("\x1b[%dm", code)
	default:
		return ""
	}
}

const ansiReset = "\x1b[0m"

func nearestANSI16(r, g, b uint8) int {
	best := 0
	bestDist := 1<<31 - 1
	for i, c := range ansi16Palette {
		dr := int(r) - int(c[0])
		dg := int(g) - int(c[1])
		db := int(b) - int(c[2])
		if d := dr*dr + dg*dg + db*db; d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

var ansi16Palette = [16][3]uint8{
	{0, 0, 0},       // black
	{205, 49, 49},   // red
	{13, 188, 121},  // green
	{229, 229, 16},  // yellow
	{36, 114, 200},  // blue
	{188, 63, 188},  // magenta
	{17, 168, 205},  // cyan
	{229, 229, 229}, // white
	{102, 102, 102}, // bright black
	{241, 76, 76},   // bright red
	{35, 209, 139},  // bright green
	{245, 245, 67},  // bright yellow
	{59, 142, 234},  // bright blue
	{214, 112, 214}, // bright magenta
	{41, 184, 219},  // bright cyan
	{255, 255, 255}, // bright white
}
