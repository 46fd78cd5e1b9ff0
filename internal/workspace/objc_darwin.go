//go:build darwin

package workspace

import (
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
	"github.com/ebitengine/purego/objc"
)

// Framework handles
var (
	libCoreServices uintptr
	libAppServices  uintptr
	libCoreFound    uintptr
	libCoreGraphics uintptr
)

// Cached selectors
var (
	selAlloc             objc.SEL
	selInit              objc.SEL
	selInitWithCapacity  objc.SEL
	selAddObject         objc.SEL
	selSetObjectForKey   objc.SEL
	selObjectForKey      objc.SEL
	selNumberWithBool    objc.SEL
	selStringWithUTF8    objc.SEL
	selUTF8String        objc.SEL
	selFileURLWithPath   objc.SEL
	selURLWithString     objc.SEL
	selPath              objc.SEL
	selSharedWorkspace   objc.SEL
	selFullPathForApp    objc.SEL
	selLocalizedDesc     objc.SEL
	selCount             objc.SEL
	selObjectAtIndex     objc.SEL
	selIntegerValue      objc.SEL
	selDoubleValue       objc.SEL
	selBoolValue         objc.SEL
	selRunningApps       objc.SEL
	selFrontmostApp      objc.SEL
	selRunningAppWithPID objc.SEL
	selLocalizedName     objc.SEL
	selBundleIdentifier  objc.SEL
	selBundleURL         objc.SEL
	selProcessIdentifier objc.SEL
	selIsHidden          objc.SEL
	selIsActive          objc.SEL
	selLaunchDate        objc.SEL
	selTimeIntervalSince objc.SEL
	selActivateWithOpts  objc.SEL
	selHide              objc.SEL
	selUnhide            objc.SEL
	selTerminate         objc.SEL
	selIsTerminated      objc.SEL
	selDrain             objc.SEL
)

// Cached classes
var (
	clsNSString             objc.Class
	clsNSURL                objc.Class
	clsNSArray              objc.Class
	clsNSMutableArray       objc.Class
	clsNSMutableDictionary  objc.Class
	clsNSNumber             objc.Class
	clsNSWorkspace          objc.Class
	clsNSRunningApplication objc.Class
	clsNSAutoreleasePool    objc.Class
)

// LaunchServices option key symbols are global NSString pointers loaded with dlsym.
var (
	symActivateKey                    objc.ID
	symHideKey                        objc.ID
	symAddToRecentsKey                objc.ID
	symPreferRunningInstanceKey       objc.ID
	symArgumentsKey                   objc.ID
	symEnvironmentVariablesKey        objc.ID
	symLaunchWithoutRestoringStateKey objc.ID
)

// LaunchServices functions
var (
	fnLSOpenURLsWithCompletionHandler func(urls, appURL, opts objc.ID, block objc.Block)
	fnLSCopyDefaultAppURLForURL       func(url objc.ID, role uint32, err uintptr) objc.ID
	fnLSASNExtractHighAndLowParts     func(asn uintptr, high, low *uint32)
	fnGetProcessPID                   func(psn uintptr, pid *int32) int32
)

// CoreFoundation and CoreGraphics functions
var (
	fnCFRetain                   func(cf uintptr) uintptr
	fnCFRelease                  func(cf uintptr)
	fnCFErrorGetDomain           func(err uintptr) objc.ID
	fnCFErrorGetCode             func(err uintptr) int64
	fnCFRunLoopRunInMode         func(mode uintptr, seconds float64, returnAfterSourceHandled bool) int32
	fnCGWindowListCopyWindowInfo func(option uint32, relativeTo uint32) objc.ID
)

var kCFRunLoopDefaultMode uintptr

var (
	initOnce sync.Once
	initErr  error
)

func initObjC() error {
	initOnce.Do(func() {
		for _, fw := range []string{
			"/System/Library/Frameworks/Foundation.framework/Foundation",
			"/System/Library/Frameworks/AppKit.framework/AppKit",
		} {
			if _, err := purego.Dlopen(fw, purego.RTLD_LAZY|purego.RTLD_GLOBAL); err != nil {
				initErr = err
				return
			}
		}
		var err error
		if libCoreServices, err = purego.Dlopen("/System/Library/Frameworks/CoreServices.framework/CoreServices", purego.RTLD_LAZY|purego.RTLD_GLOBAL); err != nil {
			initErr = err
			return
		}
		if libAppServices, err = purego.Dlopen("/System/Library/Frameworks/ApplicationServices.framework/ApplicationServices", purego.RTLD_LAZY|purego.RTLD_GLOBAL); err != nil {
			initErr = err
			return
		}
		if libCoreFound, err = purego.Dlopen("/System/Library/Frameworks/CoreFoundation.framework/CoreFoundation", purego.RTLD_LAZY|purego.RTLD_GLOBAL); err != nil {
			initErr = err
			return
		}
		if libCoreGraphics, err = purego.Dlopen("/System/Library/Frameworks/CoreGraphics.framework/CoreGraphics", purego.RTLD_LAZY|purego.RTLD_GLOBAL); err != nil {
			initErr = err
			return
		}

		selAlloc = objc.RegisterName("alloc")
		selInit = objc.RegisterName("init")
		selInitWithCapacity = objc.RegisterName("initWithCapacity:")
		selAddObject = objc.RegisterName("addObject:")
		selSetObjectForKey = objc.RegisterName("setObject:forKey:")
		selObjectForKey = objc.RegisterName("objectForKey:")
		selNumberWithBool = objc.RegisterName("numberWithBool:")
		selStringWithUTF8 = objc.RegisterName("stringWithUTF8String:")
		selUTF8String = objc.RegisterName("UTF8String")
		selFileURLWithPath = objc.RegisterName("fileURLWithPath:")
		selURLWithString = objc.RegisterName("URLWithString:")
		selPath = objc.RegisterName("path")
		selSharedWorkspace = objc.RegisterName("sharedWorkspace")
		selFullPathForApp = objc.RegisterName("fullPathForApplication:")
		selLocalizedDesc = objc.RegisterName("localizedDescription")
		selCount = objc.RegisterName("count")
		selObjectAtIndex = objc.RegisterName("objectAtIndex:")
		selIntegerValue = objc.RegisterName("integerValue")
		selDoubleValue = objc.RegisterName("doubleValue")
		selBoolValue = objc.RegisterName("boolValue")
		selRunningApps = objc.RegisterName("runningApplications")
		selFrontmostApp = objc.RegisterName("frontmostApplication")
		selRunningAppWithPID = objc.RegisterName("runningApplicationWithProcessIdentifier:")
		selLocalizedName = objc.RegisterName("localizedName")
		selBundleIdentifier = objc.RegisterName("bundleIdentifier")
		selBundleURL = objc.RegisterName("bundleURL")
		selProcessIdentifier = objc.RegisterName("processIdentifier")
		selIsHidden = objc.RegisterName("isHidden")
		selIsActive = objc.RegisterName("isActive")
		selLaunchDate = objc.RegisterName("launchDate")
		selTimeIntervalSince = objc.RegisterName("timeIntervalSince1970")
		selActivateWithOpts = objc.RegisterName("activateWithOptions:")
		selHide = objc.RegisterName("hide")
		selUnhide = objc.RegisterName("unhide")
		selTerminate = objc.RegisterName("terminate")
		selIsTerminated = objc.RegisterName("isTerminated")
		selDrain = objc.RegisterName("drain")

		clsNSString = objc.GetClass("NSString")
		clsNSURL = objc.GetClass("NSURL")
		clsNSArray = objc.GetClass("NSArray")
		clsNSMutableArray = objc.GetClass("NSMutableArray")
		clsNSMutableDictionary = objc.GetClass("NSMutableDictionary")
		clsNSNumber = objc.GetClass("NSNumber")
		clsNSWorkspace = objc.GetClass("NSWorkspace")
		clsNSRunningApplication = objc.GetClass("NSRunningApplication")
		clsNSAutoreleasePool = objc.GetClass("NSAutoreleasePool")

		// LaunchServices private SPI
		purego.RegisterLibFunc(&fnLSOpenURLsWithCompletionHandler, libCoreServices, "_LSOpenURLsWithCompletionHandler")
		purego.RegisterLibFunc(&fnLSASNExtractHighAndLowParts, libCoreServices, "_LSASNExtractHighAndLowParts")
		purego.RegisterLibFunc(&fnLSCopyDefaultAppURLForURL, libCoreServices, "LSCopyDefaultApplicationURLForURL")
		purego.RegisterLibFunc(&fnGetProcessPID, libAppServices, "GetProcessPID")

		purego.RegisterLibFunc(&fnCFRetain, libCoreFound, "CFRetain")
		purego.RegisterLibFunc(&fnCFRelease, libCoreFound, "CFRelease")
		purego.RegisterLibFunc(&fnCFErrorGetDomain, libCoreFound, "CFErrorGetDomain")
		purego.RegisterLibFunc(&fnCFErrorGetCode, libCoreFound, "CFErrorGetCode")
		purego.RegisterLibFunc(&fnCFRunLoopRunInMode, libCoreFound, "CFRunLoopRunInMode")
		purego.RegisterLibFunc(&fnCGWindowListCopyWindowInfo, libCoreGraphics, "CGWindowListCopyWindowInfo")

		// kCFRunLoopDefaultMode is a global CFStringRef
		if sym, err := purego.Dlsym(libCoreFound, "kCFRunLoopDefaultMode"); err == nil {
			kCFRunLoopDefaultMode = derefGlobalPtr(sym)
		}

		keys := []struct {
			dst  *objc.ID
			name string
		}{
			{&symActivateKey, "_kLSOpenOptionActivateKey"},
			{&symHideKey, "_kLSOpenOptionHideKey"},
			{&symAddToRecentsKey, "_kLSOpenOptionAddToRecentsKey"},
			{&symPreferRunningInstanceKey, "_kLSOpenOptionPreferRunningInstanceKey"},
			{&symArgumentsKey, "_kLSOpenOptionArgumentsKey"},
			{&symEnvironmentVariablesKey, "_kLSOpenOptionEnvironmentVariablesKey"},
			{&symLaunchWithoutRestoringStateKey, "_kLSOpenOptionLaunchWithoutRestoringStateKey"},
		}
		for _, k := range keys {
			// Missing keys leave the option unset.
			if sym, err := purego.Dlsym(libCoreServices, k.name); err == nil {
				*k.dst = objc.ID(derefGlobalPtr(sym))
			}
		}
	})
	return initErr
}

// derefGlobalPtr reads an ObjC object pointer from a global variable address.
//
//go:nocheckptr
func derefGlobalPtr(addr uintptr) uintptr {
	return *(*uintptr)(unsafe.Pointer(addr)) //nolint:govet
}

// withPool runs fn inside an autorelease pool.
func withPool(fn func()) {
	pool := objc.ID(clsNSAutoreleasePool).Send(selAlloc).Send(selInit)
	defer pool.Send(selDrain)
	fn()
}
