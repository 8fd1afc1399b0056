// Package cssvars publishes resolved themes as CSS custom properties on a
// ports.StyleSink.
package cssvars

import (
	"strconv"

	"github.com/alexisbeaulieu97/themer/internal/ports"
	"github.com/alexisbeaulieu97/themer/internal/theme"
)

// ThemeAttribute marks the root with the active theme name.
const ThemeAttribute = "data-theme"

// HeaderHeightProperty carries the page shell's header height.
const HeaderHeightProperty = "--app-header-height"

// Property names written by Publish.
const (
	PropBg              = "--app-bg"
	PropSurface         = "--app-surface"
	PropText            = "--app-text"
	PropTextMuted       = "--app-text-muted"
	PropPrimary         = "--app-primary"
	PropPrimaryContrast = "--app-primary-contrast"
	PropBorder          = "--app-border"
	PropLink            = "--app-link"
	PropOverlay         = "--app-overlay"

	PropFontFamily = "--app-font-family"
	PropSizeBody   = "--app-fs-body"
	PropSizeH1     = "--app-fs-h1"
	PropSizeH2     = "--app-fs-h2"
	PropSizeH3     = "--app-fs-h3"
	PropLine       = "--app-line"
	PropWeightReg  = "--app-fw-regular"
	PropWeightMed  = "--app-fw-medium"
	PropWeightBold = "--app-fw-bold"

	PropRadius   = "--app-radius"
	PropSpace    = "--app-space"
	PropShadowSm = "--app-shadow-sm"
	PropShadowMd = "--app-shadow-md"
	PropShadowLg = "--app-shadow-lg"
)

// Carbon component library aliases.
const (
	CarbonBackground    = "--cds-background"
	CarbonLayer         = "--cds-layer"
	CarbonTextPrimary   = "--cds-text-primary"
	CarbonTextSecondary = "--cds-text-secondary"
	CarbonLinkPrimary   = "--cds-link-primary"
)

// CarbonThemeAttribute carries the Carbon theme zone for the palette.
const CarbonThemeAttribute = "data-carbon-theme"

// Carbon theme zones.
const (
	CarbonZoneLight = "g10"
	CarbonZoneDark  = "g90"
)

// CarbonZone picks g90 for dark backgrounds and g10 otherwise, including
// when the background cannot be parsed.
func CarbonZone(t theme.Resolved) string {
	if l, ok := theme.Lightness(t.Colors.Bg); ok && l < 50 {
		return CarbonZoneDark
	}
	return CarbonZoneLight
}

// Publish writes every token of t to sink. Optional properties that t does
// not carry are removed, so publishing the same theme twice leaves the same
// property set.
func Publish(sink ports.StyleSink, t theme.Resolved) {
	sink.SetAttribute(ThemeAttribute, t.Name)

	c := t.Colors
	sink.SetProperty(PropBg, c.Bg)
	sink.SetProperty(PropSurface, c.Surface)
	sink.SetProperty(PropText, c.Text)
	sink.SetProperty(PropTextMuted, c.TextMuted)
	sink.SetProperty(PropPrimary, c.Primary)
	sink.SetProperty(PropPrimaryContrast, c.PrimaryContrast)
	sink.SetProperty(PropBorder, c.Border)
	sink.SetProperty(PropLink, c.LinkColor())
	setOptional(sink, PropOverlay, c.Overlay)

	f := t.Font
	sink.SetProperty(PropFontFamily, f.Family)
	sink.SetProperty(PropSizeBody, f.SizeBody)
	sink.SetProperty(PropSizeH1, f.SizeH1)
	sink.SetProperty(PropSizeH2, f.SizeH2)
	sink.SetProperty(PropSizeH3, f.SizeH3)
	sink.SetProperty(PropLine, formatNumber(f.LineHeight))
	sink.SetProperty(PropWeightReg, formatNumber(f.WeightRegular))
	sink.SetProperty(PropWeightMed, formatNumber(f.WeightMedium))
	sink.SetProperty(PropWeightBold, formatNumber(f.WeightBold))

	sink.SetProperty(PropRadius, t.Radius)
	sink.SetProperty(PropSpace, formatNumber(t.Spacing)+"px")
	setOptional(sink, PropShadowSm, t.Shadows.Sm)
	setOptional(sink, PropShadowMd, t.Shadows.Md)
	setOptional(sink, PropShadowLg, t.Shadows.Lg)

	sink.SetAttribute(CarbonThemeAttribute, CarbonZone(t))
	sink.SetProperty(CarbonBackground, c.Bg)
	sink.SetProperty(CarbonLayer, c.Surface)
	sink.SetProperty(CarbonTextPrimary, c.Text)
	sink.SetProperty(CarbonTextSecondary, c.TextMuted)
	sink.SetProperty(CarbonLinkPrimary, c.LinkColor())
}

// PublishHeaderHeight sets the header height in pixels. Non-positive values
// remove the property.
func PublishHeaderHeight(sink ports.StyleSink, px float64) {
	if px <= 0 {
		sink.RemoveProperty(HeaderHeightProperty)
		return
	}
	sink.SetProperty(HeaderHeightProperty, formatNumber(px)+"px")
}

func setOptional(sink ports.StyleSink, name, value string) {
	if value == "" {
		sink.RemoveProperty(name)
		return
	}
	sink.SetProperty(name, value)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
