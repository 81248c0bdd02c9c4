package export

import (
	"strings"
	"testing"

	"github.com/san-kum/pendulum/internal/dynamo"
	"github.com/san-kum/pendulum/internal/physics"
)

func TestChainToSVG(t *testing.T) {
	c := physics.NewChain(dynamo.V(100, 10), physics.DefaultGravity)
	c.AddArmAt(0)
	c.AddArmAt(0)

	svg := ChainToSVG(c, 200, 100)

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("expected a complete svg document")
	}
	if n := strings.Count(svg, "<line"); n != 2 {
		t.Errorf("expected 2 segments, got %d", n)
	}
	if !strings.Contains(svg, `x1="150.00" y1="10.00" x2="200.00" y2="10.00" stroke="#ff7f0e"`) {
		t.Error("expected second segment in the second palette colour")
	}
	// anchor plus one disc per arm
	if n := strings.Count(svg, "<circle"); n != 3 {
		t.Errorf("expected 3 circles, got %d", n)
	}
	if !strings.Contains(svg, `r="5.00" fill="#1f77b4"`) {
		t.Error("expected disc radius sqrt(25)")
	}
}

func TestChainToSVG_Nil(t *testing.T) {
	svg := ChainToSVG(nil, 10, 10)
	if strings.Contains(svg, "<line") {
		t.Error("expected no segments")
	}
}
