package theme

const appleJSON = `{
  "name": "apple",
  "font": {
    "family": "-apple-system, Helvetica, sans-serif",
    "weightRegular": 400,
    "weightMedium": 500,
    "weightBold": 700,
    "sizeBody": "clamp(14px, 1.05vw, 16px)",
    "sizeH1": "48px",
    "sizeH2": "2rem",
    "sizeH3": "20px",
    "lineHeight": 1.5
  },
  "radius": "12px",
  "spacing": 8,
  "shadowSm": "0 1px 2px rgba(0,0,0,.08)",
  "colors": {
    "bg": "#ffffff",
    "surface": "#f5f5f7",
    "text": "#111111",
    "textMuted": "#666666",
    "primary": "#0071e3",
    "primaryContrast": "#ffffff",
    "border": "#e0e0e0"
  }
}`

const materialJSON = `{
  "name": "material",
  "font": {
    "family": "Roboto, sans-serif",
    "weightRegular": 400,
    "weightMedium": 500,
    "weightBold": 700,
    "sizeBody": "16px",
    "sizeH1": "57px",
    "sizeH2": "45px",
    "sizeH3": "36px",
    "lineHeight": 1.4,
    "letterSpacing": 0.1
  },
  "radius": "4px",
  "spacing": 4,
  "shadowSm": "base-sm",
  "shadowMd": "base-md",
  "modes": {
    "light": {
      "colors": {
        "bg": "#fffbfe", "surface": "#f3edf7", "text": "#1c1b1f", "textMuted": "#49454f",
        "primary": "#6750a4", "primaryContrast": "#ffffff", "border": "#79747e"
      }
    },
    "dark": {
      "shadowSm": "dark-sm",
      "colors": {
        "bg": "#1c1b1f", "surface": "#2b2930", "text": "#e6e1e5", "textMuted": "#cac4d0",
        "primary": "#d0bcff", "primaryContrast": "#381e72", "border": "#938f99", "link": "#e8def8"
      }
    }
  }
}`
