//go:build darwin

package workspace

import (
	"time"
	"unsafe"

	"github.com/ebitengine/purego/objc"
)

// nsString creates an NSString from a Go string.
func nsString(s string) objc.ID {
	b := append([]byte(s), 0)
	return objc.ID(clsNSString).Send(selStringWithUTF8, uintptr(unsafe.Pointer(&b[0])))
}

// goString extracts a Go string from an NSString (or CFStringRef).
func goString(id objc.ID) string {
	if id == 0 {
		return ""
	}
	ptr := objc.Send[*byte](id, selUTF8String)
	if ptr == nil {
		return ""
	}
	data := unsafe.Slice(ptr, 1<<30)
	for i, b := range data {
		if b == 0 {
			return string(data[:i])
		}
	}
	return ""
}

// urlPath returns the filesystem path of a file NSURL.
func urlPath(url objc.ID) string {
	if url == 0 {
		return ""
	}
	return goString(url.Send(selPath))
}

func nsURLFromString(s string) objc.ID {
	return objc.ID(clsNSURL).Send(selURLWithString, nsString(s))
}

func nsURLFileURLWithPath(path string) objc.ID {
	return objc.ID(clsNSURL).Send(selFileURLWithPath, nsString(path))
}

// arrayEach calls fn for each element of an NSArray.
func arrayEach(arr objc.ID, fn func(objc.ID)) {
	if arr == 0 {
		return
	}
	n := objc.Send[uint](arr, selCount)
	for i := uint(0); i < n; i++ {
		fn(arr.Send(selObjectAtIndex, uintptr(i)))
	}
}

// dictGet returns the value for a string key of an NSDictionary.
func dictGet(dict objc.ID, key string) objc.ID {
	if dict == 0 {
		return 0
	}
	return dict.Send(selObjectForKey, nsString(key))
}

func dictInt(dict objc.ID, key string) int {
	n := dictGet(dict, key)
	if n == 0 {
		return 0
	}
	return int(objc.Send[int64](n, selIntegerValue))
}

func dictFloat(dict objc.ID, key string) float64 {
	n := dictGet(dict, key)
	if n == 0 {
		return 0
	}
	return objc.Send[float64](n, selDoubleValue)
}

func dictBool(dict objc.ID, key string) bool {
	n := dictGet(dict, key)
	if n == 0 {
		return false
	}
	return objc.Send[bool](n, selBoolValue)
}

// dictSet sets a key-value pair in an NSMutableDictionary.
func dictSet(dict, key, value objc.ID) {
	dict.Send(selSetObjectForKey, value, key)
}

// dictSetBool sets a bool value for a key in an NSMutableDictionary.
func dictSetBool(dict, key objc.ID, val bool) {
	if key == 0 {
		return
	}
	var bval uintptr
	if val {
		bval = 1
	}
	dictSet(dict, key, objc.ID(clsNSNumber).Send(selNumberWithBool, bval))
}

// cfErrorDescription gets a description from a CFError via NSError bridging.
func cfErrorDescription(err uintptr) string {
	if err == 0 {
		return ""
	}
	return goString(objc.ID(err).Send(selLocalizedDesc))
}

// getProcessPID converts an ASN to a PID via GetProcessPID.
func getProcessPID(asn uintptr) int {
	var high, low uint32
	fnLSASNExtractHighAndLowParts(asn, &high, &low)
	type psn struct {
		high uint32
		low  uint32
	}
	p := psn{high: high, low: low}
	var pid int32
	if fnGetProcessPID(uintptr(unsafe.Pointer(&p)), &pid) != 0 {
		return 0
	}
	return int(pid)
}

// pumpRunLoop runs the CF run loop for the given duration.
func pumpRunLoop(d time.Duration) {
	fnCFRunLoopRunInMode(kCFRunLoopDefaultMode, d.Seconds(), false)
}
