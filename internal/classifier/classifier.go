package classifier

import (
	"fmt"
	"strings"

	"shotbot/internal/frame"
)

// Rule правило, по которому пиксель считается "красным" (цветом цели)
type Rule int

const (
	// Relative красный канал больше суммы зеленого и синего, вычитание с насыщением в ноль
	Relative Rule = iota
	// Absolute фиксированные пороги по каждому каналу
	Absolute
)

const (
	absoluteMinRed   = 200
	absoluteMaxOther = 100
)

// ParseRule разбирает имя правила из конфигурации
func ParseRule(name string) (Rule, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "relative":
		return Relative, nil
	case "absolute":
		return Absolute, nil
	}
	return Relative, fmt.Errorf("unknown color rule %q", name)
}

func (r Rule) String() string {
	switch r {
	case Relative:
		return "relative"
	case Absolute:
		return "absolute"
	}
	return fmt.Sprintf("Rule(%d)", int(r))
}

// MatchRGB проверяет пиксель по именованным каналам
func (r Rule) MatchRGB(red, green, blue uint8) bool {
	switch r {
	case Absolute:
		return red >= absoluteMinRed && green < absoluteMaxOther && blue < absoluteMaxOther
	default:
		return satSub(satSub(red, green), blue) > 0
	}
}

// IsTarget проверяет один пиксель захвата (B, G, R[, X])
func (r Rule) IsTarget(px []byte) bool {
	return r.MatchRGB(px[2], px[1], px[0])
}

// Count считает пиксели цвета цели в BGRA буфере
func (r Rule) Count(pix []byte) int {
	n := 0
	for i := 0; i+frame.BytesPerPixel <= len(pix); i += frame.BytesPerPixel {
		if r.MatchRGB(pix[i+2], pix[i+1], pix[i]) {
			n++
		}
	}
	return n
}

func satSub(a, b uint8) uint8 {
	if a < b {
		return 0
	}
	return a - b
}
