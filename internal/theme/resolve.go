package theme

// Resolve flattens tokens into the runtime form for mode.
//
// Multi-mode themes take the palette of the requested mode and its shadows,
// falling back to the shared shadows per field. Single-mode themes use their
// one palette for every mode; they are not darkened here (see
// ResolveDerived).
func Resolve(tokens Tokens, mode Mode) Resolved {
	resolved := Resolved{Base: tokens.Base}
	resolved.Font = tokens.Font.clone()

	switch tokens.Variant() {
	case VariantMulti:
		entry := tokens.Modes.Get(mode)
		resolved.Colors = entry.Colors
		resolved.Shadows = entry.Shadows.merge(tokens.Shadows)
	default:
		if tokens.Colors != nil {
			resolved.Colors = *tokens.Colors
		}
	}
	return resolved
}

// ResolveDerived behaves like Resolve, except that a dark rendering of a
// single-mode theme uses a palette derived from its light palette.
func ResolveDerived(tokens Tokens, mode Mode) Resolved {
	resolved := Resolve(tokens, mode)
	if mode == ModeDark && tokens.Variant() == VariantSingle {
		resolved.Colors = DeriveDarkPalette(resolved.Colors)
	}
	return resolved
}
