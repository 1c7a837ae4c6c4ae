package platform

// Well-known input source identifiers. The namespace is defined by the OS;
// which identifiers actually resolve depends on the input sources the user
// has enabled in System Settings.
const (
	SourceUSKeyboard      = "com.apple.keylayout.US"
	SourceFrenchKeyboard  = "com.apple.keylayout.French"
	SourceKotoeriJapanese = "com.apple.inputmethod.Kotoeri.Japanese"
)
