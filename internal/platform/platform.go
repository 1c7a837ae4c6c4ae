package platform

// Switcher changes the active system-wide keyboard input source.
type Switcher interface {
	// SwitchInputSource makes the input source whose InputSourceID matches
	// id (e.g. "com.apple.keylayout.French") the active system input source.
	// It returns an error wrapping ErrSourceNotFound when id matches none of
	// the user's enabled input sources, and an *OSStatusError when the native
	// selection call reports a non-zero status. Selecting the already-active
	// source is a no-op and returns nil.
	SwitchInputSource(id string) error
}
