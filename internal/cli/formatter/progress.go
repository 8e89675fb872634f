package formatter

import (
	"fmt"
	"math"
	"strings"

	"github.com/alexanderramin/timecard/internal/domain"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderAllocation renders how much of the clock total the categories cover,
// like [████████░░] 7.50/8.00h. Green within tolerance, yellow short of it,
// red above it.
func RenderAllocation(allocated, clock float64, width int) string {
	if width < 2 {
		width = 2
	}
	pct := 1.0
	if clock > 0 {
		pct = math.Min(1, math.Max(0, allocated/clock))
	}
	filled := int(math.Round(pct * float64(width)))
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	switch diff := allocated - clock; {
	case diff > domain.Tolerance:
		style = StyleRed
	case diff < -domain.Tolerance:
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %.2f/%.2fh", style.Render(bar), allocated, clock)
}
