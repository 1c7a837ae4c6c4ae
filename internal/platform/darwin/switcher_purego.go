//go:build darwin && !cgo

package darwin

import (
	"fmt"
	"unsafe"

	"github.com/ebitengine/purego"
	"github.com/mlyden/inputsource-cli/internal/platform"
)

const (
	carbonPath         = "/System/Library/Frameworks/Carbon.framework/Carbon"
	coreFoundationPath = "/System/Library/Frameworks/CoreFoundation.framework/CoreFoundation"

	// kCFStringEncodingUTF8
	utf8Encoding = 0x08000100
)

// tis bundles the Text Input Source Services and CoreFoundation entry points
// resolved at runtime with dlopen. Each call loads its own instance, so the
// package keeps no library state; reopening an already-loaded framework only
// bumps its reference count.
type tis struct {
	createInputSourceList          func(filter uintptr, includeAllInstalled bool) uintptr
	selectInputSource              func(source uintptr) int32
	copyCurrentKeyboardInputSource func() uintptr
	getInputSourceProperty         func(source uintptr, key uintptr) uintptr

	stringCreateWithCString func(alloc uintptr, s string, encoding uint32) uintptr
	stringGetCString        func(str uintptr, buf *byte, size int64, encoding uint32) bool
	dictionaryCreate        func(alloc uintptr, keys *uintptr, values *uintptr, count int64, keyCallBacks uintptr, valueCallBacks uintptr) uintptr
	arrayGetCount           func(array uintptr) int64
	arrayGetValueAtIndex    func(array uintptr, index int64) uintptr
	release                 func(ref uintptr)

	inputSourceIDKey   uintptr // kTISPropertyInputSourceID
	typeKeyCallBacks   uintptr // &kCFTypeDictionaryKeyCallBacks
	typeValueCallBacks uintptr // &kCFTypeDictionaryValueCallBacks
}

func loadTIS() (*tis, error) {
	carbon, err := purego.Dlopen(carbonPath, purego.RTLD_LAZY)
	if err != nil {
		return nil, fmt.Errorf("failed to load the Carbon framework: %w", err)
	}
	cf, err := purego.Dlopen(coreFoundationPath, purego.RTLD_LAZY)
	if err != nil {
		return nil, fmt.Errorf("failed to load the CoreFoundation framework: %w", err)
	}

	t := &tis{}
	purego.RegisterLibFunc(&t.createInputSourceList, carbon, "TISCreateInputSourceList")
	purego.RegisterLibFunc(&t.selectInputSource, carbon, "TISSelectInputSource")
	purego.RegisterLibFunc(&t.copyCurrentKeyboardInputSource, carbon, "TISCopyCurrentKeyboardInputSource")
	purego.RegisterLibFunc(&t.getInputSourceProperty, carbon, "TISGetInputSourceProperty")

	purego.RegisterLibFunc(&t.stringCreateWithCString, cf, "CFStringCreateWithCString")
	purego.RegisterLibFunc(&t.stringGetCString, cf, "CFStringGetCString")
	purego.RegisterLibFunc(&t.dictionaryCreate, cf, "CFDictionaryCreate")
	purego.RegisterLibFunc(&t.arrayGetCount, cf, "CFArrayGetCount")
	purego.RegisterLibFunc(&t.arrayGetValueAtIndex, cf, "CFArrayGetValueAtIndex")
	purego.RegisterLibFunc(&t.release, cf, "CFRelease")

	// kTISPropertyInputSourceID is a CFStringRef variable, so the symbol
	// address needs one dereference to yield the key itself.
	keyAddr, err := purego.Dlsym(carbon, "kTISPropertyInputSourceID")
	if err != nil {
		return nil, fmt.Errorf("failed to resolve kTISPropertyInputSourceID: %w", err)
	}
	t.inputSourceIDKey = *(*uintptr)(unsafe.Pointer(keyAddr))

	// The dictionary callback symbols are structs whose addresses are passed
	// to CFDictionaryCreate as-is.
	t.typeKeyCallBacks, err = purego.Dlsym(cf, "kCFTypeDictionaryKeyCallBacks")
	if err != nil {
		return nil, fmt.Errorf("failed to resolve kCFTypeDictionaryKeyCallBacks: %w", err)
	}
	t.typeValueCallBacks, err = purego.Dlsym(cf, "kCFTypeDictionaryValueCallBacks")
	if err != nil {
		return nil, fmt.Errorf("failed to resolve kCFTypeDictionaryValueCallBacks: %w", err)
	}

	return t, nil
}

// Switcher changes the active keyboard input source via the Carbon Text
// Input Source Services API, resolved at runtime for cgo-free builds.
type Switcher struct{}

// NewSwitcher creates a Switcher.
func NewSwitcher() *Switcher {
	return &Switcher{}
}

// SwitchInputSource selects the enabled input source whose InputSourceID
// matches id.
func (s *Switcher) SwitchInputSource(id string) error {
	t, err := loadTIS()
	if err != nil {
		return err
	}

	sourceID := t.stringCreateWithCString(0, id, utf8Encoding)
	if sourceID == 0 {
		return fmt.Errorf("input source %q: %w", id, platform.ErrSourceNotFound)
	}
	defer t.release(sourceID)

	keys := []uintptr{t.inputSourceIDKey}
	values := []uintptr{sourceID}
	filter := t.dictionaryCreate(0, &keys[0], &values[0], 1, t.typeKeyCallBacks, t.typeValueCallBacks)
	if filter == 0 {
		return fmt.Errorf("input source %q: %w", id, platform.ErrSourceNotFound)
	}
	defer t.release(filter)

	// false: search only the sources the user has enabled
	sources := t.createInputSourceList(filter, false)
	if sources == 0 {
		return fmt.Errorf("input source %q: %w", id, platform.ErrSourceNotFound)
	}
	defer t.release(sources)

	if t.arrayGetCount(sources) == 0 {
		return fmt.Errorf("input source %q: %w", id, platform.ErrSourceNotFound)
	}

	source := t.arrayGetValueAtIndex(sources, 0)
	if status := t.selectInputSource(source); status != 0 {
		return &platform.OSStatusError{Call: "TISSelectInputSource", Status: status}
	}
	return nil
}

// currentSourceID returns the InputSourceID of the active keyboard input
// source. Used by tests to observe the effect of a switch.
func currentSourceID() (string, error) {
	t, err := loadTIS()
	if err != nil {
		return "", err
	}

	source := t.copyCurrentKeyboardInputSource()
	if source == 0 {
		return "", fmt.Errorf("failed to read the current input source")
	}
	defer t.release(source)

	sourceID := t.getInputSourceProperty(source, t.inputSourceIDKey)
	if sourceID == 0 {
		return "", fmt.Errorf("current input source has no InputSourceID property")
	}

	buf := make([]byte, 256)
	if !t.stringGetCString(sourceID, &buf[0], int64(len(buf)), utf8Encoding) {
		return "", fmt.Errorf("failed to convert the current InputSourceID")
	}
	for i, b := range buf {
		if b == 0 {
			return string(buf[:i]), nil
		}
	}
	return string(buf), nil
}
