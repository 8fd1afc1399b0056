package overrides

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/alexisbeaulieu97/themer/internal/theme"
)

var (
	unitPattern  = regexp.MustCompile(`(\d+(?:\.\d+)?)(px|rem)`)
	clampPattern = regexp.MustCompile(`clamp\(([^)]+)\)`)
)

// Apply layers o over base and returns a new theme. base is not modified.
func Apply(base theme.Resolved, o Overrides) theme.Resolved {
	out := base.Clone()

	applyColor(&out.Colors.Bg, o.Bg)
	applyColor(&out.Colors.Surface, o.Surface)
	applyColor(&out.Colors.Text, o.Text)
	applyColor(&out.Colors.TextMuted, o.TextMuted)
	applyColor(&out.Colors.Primary, o.Primary)
	applyColor(&out.Colors.PrimaryContrast, o.PrimaryContrast)
	applyColor(&out.Colors.Border, o.Border)
	applyColor(&out.Colors.Link, o.Link)

	if o.WeightRegular != nil {
		out.Font.WeightRegular = *o.WeightRegular
	}
	if o.WeightMedium != nil {
		out.Font.WeightMedium = *o.WeightMedium
	}
	if o.WeightBold != nil {
		out.Font.WeightBold = *o.WeightBold
	}

	if o.ScaleFactor != nil && *o.ScaleFactor != 1 {
		factor := *o.ScaleFactor
		out.Font.SizeBody = ScaleSize(out.Font.SizeBody, factor)
		out.Font.SizeH1 = ScaleSize(out.Font.SizeH1, factor)
		out.Font.SizeH2 = ScaleSize(out.Font.SizeH2, factor)
		out.Font.SizeH3 = ScaleSize(out.Font.SizeH3, factor)
	}

	return out
}

func applyColor(dst *string, v *string) {
	if v != nil && *v != "" {
		*dst = *v
	}
}

// ScaleSize multiplies every px or rem magnitude in expr by factor and
// renders it with two decimals. Inside a three-argument clamp() only the
// min and max bounds are scaled.
func ScaleSize(expr string, factor float64) string {
	var b strings.Builder
	last := 0
	for _, loc := range clampPattern.FindAllStringSubmatchIndex(expr, -1) {
		b.WriteString(scaleUnits(expr[last:loc[0]], factor))
		b.WriteString(scaleClamp(expr[loc[0]:loc[1]], expr[loc[2]:loc[3]], factor))
		last = loc[1]
	}
	b.WriteString(scaleUnits(expr[last:], factor))
	return b.String()
}

func scaleClamp(whole, args string, factor float64) string {
	parts := strings.Split(args, ",")
	if len(parts) != 3 {
		return scaleUnits(whole, factor)
	}
	lo := strings.TrimSpace(parts[0])
	mid := strings.TrimSpace(parts[1])
	hi := strings.TrimSpace(parts[2])
	return "clamp(" + scaleUnits(lo, factor) + ", " + mid + ", " + scaleUnits(hi, factor) + ")"
}

func scaleUnits(s string, factor float64) string {
	return unitPattern.ReplaceAllStringFunc(s, func(m string) string {
		sub := unitPattern.FindStringSubmatch(m)
		n, err := strconv.ParseFloat(sub[1], 64)
		if err != nil {
			return m
		}
		return strconv.FormatFloat(n*factor, 'f', 2, 64) + sub[2]
	})
}
