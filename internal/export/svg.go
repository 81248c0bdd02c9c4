package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/pendulum/internal/palette"
	"github.com/san-kum/pendulum/internal/physics"
)

// ChainToSVG draws a snapshot of the chain the way the canvas does: one
// coloured segment per arm, then a disc of radius √mass at every joint.
func ChainToSVG(c *physics.Chain, width, height int) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#1b1b1b"/>
`, width, height, width, height))

	if c == nil {
		sb.WriteString("</svg>\n")
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="3" fill="#8c8c8c"/>
`, c.Anchor.X, c.Anchor.Y))

	last := c.Anchor
	for i, arm := range c.Arms {
		sb.WriteString(fmt.Sprintf(`<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="2"/>
`, last.X, last.Y, arm.Pos.X, arm.Pos.Y, palette.Hex(i)))
		last = arm.Pos
	}
	for i, arm := range c.Arms {
		sb.WriteString(fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s"/>
`, arm.Pos.X, arm.Pos.Y, math.Sqrt(arm.Mass), palette.Hex(i)))
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}
