package ports

// StyleSink is the root rendering context that receives published CSS custom
// properties and marker attributes.
type StyleSink interface {
	SetProperty(name, value string)
	RemoveProperty(name string)
	SetAttribute(name, value string)
}
