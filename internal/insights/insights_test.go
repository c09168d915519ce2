package insights

import (
	"math"
	"strings"
	"testing"

	"github.com/dkapoor/netsales-dashboard/internal/pipeline"
)

func TestBuildPrompt(t *testing.T) {
	m := pipeline.Metrics{
		TotalPositive:    12500000,
		TotalNegative:    340000,
		DistinctEntities: 7,
		GrowthPercent:    11.1,
	}

	prompt := buildPrompt(m)

	for _, want := range []string{"₹1.25 Cr", "₹3.40 L", "7", "11.1%"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("buildPrompt() missing %q:\n%s", want, prompt)
		}
	}
}

func TestBuildPrompt_UndefinedGrowth(t *testing.T) {
	m := pipeline.Metrics{GrowthPercent: math.NaN()}

	prompt := buildPrompt(m)

	if !strings.Contains(prompt, "not available") {
		t.Errorf("buildPrompt() should mark undefined growth as not available:\n%s", prompt)
	}
	if strings.Contains(prompt, "NaN") {
		t.Errorf("buildPrompt() leaks NaN:\n%s", prompt)
	}
}
