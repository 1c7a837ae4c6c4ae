//go:build darwin && cgo

package darwin

/*
#cgo LDFLAGS: -framework Carbon -framework CoreFoundation

#include <Carbon/Carbon.h>
#include <stdlib.h>

// Select the enabled input source whose InputSourceID matches sourceID.
// Returns 0 on success, 1 when no enabled source matches, and 2 when
// TISSelectInputSource fails (with the OSStatus written to *status).
static int tis_select_input_source(const char *sourceID, int *status) {
    CFStringRef sourceIDRef = CFStringCreateWithCString(NULL, sourceID, kCFStringEncodingUTF8);
    if (sourceIDRef == NULL) {
        return 1;
    }

    const void *keys[] = { kTISPropertyInputSourceID };
    const void *values[] = { sourceIDRef };
    CFDictionaryRef filter = CFDictionaryCreate(NULL, keys, values, 1,
        &kCFTypeDictionaryKeyCallBacks, &kCFTypeDictionaryValueCallBacks);
    if (filter == NULL) {
        CFRelease(sourceIDRef);
        return 1;
    }

    // false: search only the sources the user has enabled
    CFArrayRef sources = TISCreateInputSourceList(filter, false);
    CFRelease(filter);
    CFRelease(sourceIDRef);

    if (sources == NULL || CFArrayGetCount(sources) == 0) {
        if (sources != NULL) {
            CFRelease(sources);
        }
        return 1;
    }

    TISInputSourceRef source = (TISInputSourceRef)CFArrayGetValueAtIndex(sources, 0);
    OSStatus err = TISSelectInputSource(source);
    CFRelease(sources);

    if (err != noErr) {
        *status = (int)err;
        return 2;
    }
    return 0;
}

// Return the InputSourceID of the active keyboard input source as a
// malloc'd string, or NULL on failure. The caller frees it.
static char *tis_current_source_id(void) {
    TISInputSourceRef source = TISCopyCurrentKeyboardInputSource();
    if (source == NULL) {
        return NULL;
    }

    CFStringRef sourceID = (CFStringRef)TISGetInputSourceProperty(source, kTISPropertyInputSourceID);
    if (sourceID == NULL) {
        CFRelease(source);
        return NULL;
    }

    CFIndex maxSize = CFStringGetMaximumSizeForEncoding(CFStringGetLength(sourceID), kCFStringEncodingUTF8) + 1;
    char *buffer = malloc(maxSize);
    if (buffer != NULL && !CFStringGetCString(sourceID, buffer, maxSize, kCFStringEncodingUTF8)) {
        free(buffer);
        buffer = NULL;
    }

    CFRelease(source);
    return buffer;
}
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/mlyden/inputsource-cli/internal/platform"
)

// Switcher changes the active keyboard input source via the Carbon Text
// Input Source Services API.
type Switcher struct{}

// NewSwitcher creates a Switcher.
func NewSwitcher() *Switcher {
	return &Switcher{}
}

// SwitchInputSource selects the enabled input source whose InputSourceID
// matches id.
func (s *Switcher) SwitchInputSource(id string) error {
	cID := C.CString(id)
	defer C.free(unsafe.Pointer(cID))

	var status C.int
	switch C.tis_select_input_source(cID, &status) {
	case 0:
		return nil
	case 1:
		return fmt.Errorf("input source %q: %w", id, platform.ErrSourceNotFound)
	default:
		return &platform.OSStatusError{Call: "TISSelectInputSource", Status: int32(status)}
	}
}

// currentSourceID returns the InputSourceID of the active keyboard input
// source. Used by tests to observe the effect of a switch.
func currentSourceID() (string, error) {
	cID := C.tis_current_source_id()
	if cID == nil {
		return "", fmt.Errorf("failed to read the current input source")
	}
	defer C.free(unsafe.Pointer(cID))
	return C.GoString(cID), nil
}
