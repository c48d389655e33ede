//go:build darwin && cgo

// Package ax implements the accessibility Accessor and Platform contracts on
// top of the macOS AX API. It is a thin interop layer: every call delegates
// straight to ApplicationServices and converts CF-typed values into the
// package-neutral Value union.
package ax

/*
#cgo CFLAGS: -x objective-c -Wno-deprecated-declarations
#cgo LDFLAGS: -framework ApplicationServices -framework AppKit -framework CoreFoundation

#include <ApplicationServices/ApplicationServices.h>
#include <CoreFoundation/CoreFoundation.h>
#import <AppKit/AppKit.h>

typedef struct {
	pid_t pid;
	int   active;
	char  name[256];
} AppInfo;

// listRegularApps fills out with the applications the user can interact with
// (activation policy "regular"), skipping background and system processes.
static int listRegularApps(AppInfo* out, int max) {
	int count = 0;
	@autoreleasepool {
		NSArray<NSRunningApplication*>* apps = [[NSWorkspace sharedWorkspace] runningApplications];
		for (NSRunningApplication* app in apps) {
			if (count >= max) break;
			if (app.activationPolicy != NSApplicationActivationPolicyRegular) continue;
			out[count].pid = app.processIdentifier;
			out[count].active = app.active ? 1 : 0;
			const char* name = [app.localizedName UTF8String];
			if (name != NULL) {
				strncpy(out[count].name, name, sizeof(out[count].name) - 1);
				out[count].name[sizeof(out[count].name) - 1] = '\0';
			} else {
				out[count].name[0] = '\0';
			}
			count++;
		}
	}
	return count;
}

static AXUIElementRef createAppElement(pid_t pid) {
	return AXUIElementCreateApplication(pid);
}

static AXUIElementRef createSystemWideElement(void) {
	return AXUIElementCreateSystemWide();
}

static CFTypeRef copyAttribute(AXUIElementRef element, CFStringRef attr) {
	CFTypeRef value = NULL;
	AXError err = AXUIElementCopyAttributeValue(element, attr, &value);
	if (err != kAXErrorSuccess) {
		return NULL;
	}
	return value;
}

static int axPointFromValue(CFTypeRef value, double* x, double* y) {
	CGPoint p;
	if (AXValueGetType((AXValueRef)value) != kAXValueTypeCGPoint) return 0;
	if (!AXValueGetValue((AXValueRef)value, kAXValueTypeCGPoint, &p)) return 0;
	*x = p.x;
	*y = p.y;
	return 1;
}

static int axSizeFromValue(CFTypeRef value, double* w, double* h) {
	CGSize s;
	if (AXValueGetType((AXValueRef)value) != kAXValueTypeCGSize) return 0;
	if (!AXValueGetValue((AXValueRef)value, kAXValueTypeCGSize, &s)) return 0;
	*w = s.width;
	*h = s.height;
	return 1;
}

static CFTypeID elementTypeID(void) { return AXUIElementGetTypeID(); }
*/
import "C"

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/computeruse/computer-agent/internal/accessibility"
)

const maxApps = 256

// element wraps a retained AXUIElementRef. The wrapper owns one reference and
// releases it when collected, so a node extracted from a platform array stays
// valid for the lifetime of the snapshot that references it.
type element struct {
	ref C.AXUIElementRef
}

func wrapElement(ref C.AXUIElementRef, retain bool) *element {
	if retain {
		C.CFRetain(C.CFTypeRef(ref))
	}
	e := &element{ref: ref}
	runtime.SetFinalizer(e, func(e *element) {
		C.CFRelease(C.CFTypeRef(e.ref))
	})
	return e
}

// Accessor reads AX attributes from element handles.
type Accessor struct{}

var _ accessibility.Accessor = Accessor{}

// Get copies one attribute value and converts it. Every AX error, including
// an invalidated element, is reported as an absent value.
func (Accessor) Get(node accessibility.Node, attr string) (accessibility.Value, bool) {
	e, ok := node.(*element)
	if !ok {
		return accessibility.Value{}, false
	}

	cattr := cfString(attr)
	defer C.CFRelease(C.CFTypeRef(cattr))

	value := C.copyAttribute(e.ref, cattr)
	if value == 0 {
		return accessibility.Value{}, false
	}
	defer C.CFRelease(value)

	return convertValue(value)
}

// Children returns the element's children, preferring the primary children
// attribute and falling back to visible children when it is absent.
func (Accessor) Children(node accessibility.Node) ([]accessibility.Node, bool) {
	e, ok := node.(*element)
	if !ok {
		return nil, false
	}
	if children, ok := copyElementArray(e.ref, accessibility.AttrChildren); ok {
		return children, true
	}
	return copyElementArray(e.ref, accessibility.AttrVisibleChildren)
}

func copyElementArray(ref C.AXUIElementRef, attr string) ([]accessibility.Node, bool) {
	cattr := cfString(attr)
	defer C.CFRelease(C.CFTypeRef(cattr))

	value := C.copyAttribute(ref, cattr)
	if value == 0 {
		return nil, false
	}
	defer C.CFRelease(value)

	if C.CFGetTypeID(value) != C.CFArrayGetTypeID() {
		return nil, false
	}
	array := C.CFArrayRef(value)
	n := int(C.CFArrayGetCount(array))
	out := make([]accessibility.Node, 0, n)
	for i := 0; i < n; i++ {
		item := C.CFArrayGetValueAtIndex(array, C.CFIndex(i))
		if C.CFGetTypeID(C.CFTypeRef(item)) != C.elementTypeID() {
			continue
		}
		out = append(out, wrapElement(C.AXUIElementRef(item), true))
	}
	return out, true
}

// convertValue maps a CF-typed attribute value onto the Value union.
func convertValue(value C.CFTypeRef) (accessibility.Value, bool) {
	switch C.CFGetTypeID(value) {
	case C.CFStringGetTypeID():
		return accessibility.StringValue(goString(C.CFStringRef(value))), true

	case C.CFBooleanGetTypeID():
		return accessibility.BoolValue(C.CFBooleanGetValue(C.CFBooleanRef(value)) != 0), true

	case C.CFNumberGetTypeID():
		var num C.double
		if C.CFNumberGetValue(C.CFNumberRef(value), C.kCFNumberDoubleType, unsafe.Pointer(&num)) != 0 {
			return accessibility.NumberValue(float64(num)), true
		}
		return accessibility.Value{}, false

	case C.CFArrayGetTypeID():
		array := C.CFArrayRef(value)
		n := int(C.CFArrayGetCount(array))
		items := make([]accessibility.Value, 0, n)
		for i := 0; i < n; i++ {
			item := C.CFTypeRef(C.CFArrayGetValueAtIndex(array, C.CFIndex(i)))
			if C.CFGetTypeID(item) == C.elementTypeID() {
				items = append(items, accessibility.ElementValue(wrapElement(C.AXUIElementRef(item), true)))
				continue
			}
			if v, ok := convertValue(item); ok {
				items = append(items, v)
			}
		}
		return accessibility.ListValue(items...), true

	case C.elementTypeID():
		return accessibility.ElementValue(wrapElement(C.AXUIElementRef(value), true)), true
	}

	// Not a plain CF type; try the packed AX geometry types.
	var x, y C.double
	if C.axPointFromValue(value, &x, &y) != 0 {
		return accessibility.PointValue(float64(x), float64(y)), true
	}
	var w, h C.double
	if C.axSizeFromValue(value, &w, &h) != 0 {
		return accessibility.SizeValue(float64(w), float64(h)), true
	}
	return accessibility.Value{}, false
}

// Platform enumerates applications and their windows for snapshots.
type Platform struct{}

var _ accessibility.Platform = Platform{}

// New returns the darwin platform.
func New() (Platform, error) { return Platform{}, nil }

// Accessor returns the AX attribute accessor.
func (Platform) Accessor() accessibility.Accessor { return Accessor{} }

// Applications lists regular (user-facing) applications with their top-level
// window elements. An application whose windows cannot be read is returned
// without windows rather than dropped.
func (Platform) Applications() ([]accessibility.Application, error) {
	infos := make([]C.AppInfo, maxApps)
	n := int(C.listRegularApps(&infos[0], C.int(maxApps)))
	if n < 0 {
		return nil, fmt.Errorf("listing running applications failed")
	}

	apps := make([]accessibility.Application, 0, n)
	for i := 0; i < n; i++ {
		info := infos[i]
		app := accessibility.Application{
			Name:      C.GoString(&info.name[0]),
			PID:       int32(info.pid),
			Frontmost: info.active != 0,
		}

		appElement := C.createAppElement(info.pid)
		if appElement != 0 {
			if windows, ok := copyElementArray(appElement, accessibility.AttrWindows); ok {
				app.Windows = windows
			}
			C.CFRelease(C.CFTypeRef(appElement))
		}
		apps = append(apps, app)
	}
	return apps, nil
}

// SystemRoot returns the system-wide accessibility element.
func (Platform) SystemRoot() (accessibility.Node, error) {
	ref := C.createSystemWideElement()
	if ref == 0 {
		return nil, fmt.Errorf("creating system-wide element failed")
	}
	return wrapElement(ref, false), nil
}

func cfString(s string) C.CFStringRef {
	cs := C.CString(s)
	defer C.free(unsafe.Pointer(cs))
	return C.CFStringCreateWithCString(C.kCFAllocatorDefault, cs, C.kCFStringEncodingUTF8)
}

func goString(ref C.CFStringRef) string {
	if ptr := C.CFStringGetCStringPtr(ref, C.kCFStringEncodingUTF8); ptr != nil {
		return C.GoString(ptr)
	}
	length := C.CFStringGetLength(ref)
	bufSize := C.CFStringGetMaximumSizeForEncoding(length, C.kCFStringEncodingUTF8) + 1
	buf := make([]C.char, int(bufSize))
	if C.CFStringGetCString(ref, &buf[0], bufSize, C.kCFStringEncodingUTF8) == 0 {
		return ""
	}
	return C.GoString(&buf[0])
}
