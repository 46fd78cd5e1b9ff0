//go:build darwin

package workspace

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ebitengine/purego/objc"
)

// Launch launches the application bundle at path through
// _LSOpenURLsWithCompletionHandler, the call /usr/bin/open uses, and returns
// its process id. The pid is 0 when LaunchServices does not report one.
func (w *Workspace) Launch(ctx context.Context, path string, opts LaunchOptions) (int, error) {
	if err := initObjC(); err != nil {
		return 0, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return 0, fmt.Errorf("resolve app path: %w", err)
	}

	var res lsOpenResult
	withPool(func() {
		appURL := nsURLFileURLWithPath(abs)
		urls := objc.ID(clsNSArray).Send(objc.RegisterName("array"))
		res, err = callLSOpen(ctx, urls, appURL, buildOptionDict(opts))
	})
	if err != nil {
		return 0, err
	}
	w.logger.Debug("xa: launched", "path", abs, "pid", res.pid, "already_running", res.alreadyRunning)
	return res.pid, nil
}

// OpenURL opens a URL with its default application.
func (w *Workspace) OpenURL(ctx context.Context, rawURL string) error {
	if err := initObjC(); err != nil {
		return err
	}
	var err error
	withPool(func() {
		nsurl := nsURLFromString(rawURL)
		if nsurl == 0 {
			err = fmt.Errorf("invalid URL: %s", rawURL)
			return
		}
		const kLSRolesAll = 0xFFFFFFFF
		appURL := fnLSCopyDefaultAppURLForURL(nsurl, kLSRolesAll, 0)
		arr := objc.ID(clsNSArray).Send(objc.RegisterName("arrayWithObject:"), nsurl)
		opts := LaunchOptions{Activate: true, AddToRecents: true}
		_, err = callLSOpen(ctx, arr, appURL, buildOptionDict(opts))
	})
	return err
}

// LocateApplication returns the bundle path of an application given its
// name, bundle path or path relative to the working directory.
func (w *Workspace) LocateApplication(ctx context.Context, name string) (string, error) {
	if strings.Contains(name, "/") || strings.HasSuffix(name, ".app") {
		if abs, err := filepath.Abs(name); err == nil {
			if _, err := os.Stat(abs); err == nil {
				return abs, nil
			}
		}
	}
	if err := initObjC(); err != nil {
		return "", err
	}
	var path string
	withPool(func() {
		ws := objc.ID(clsNSWorkspace).Send(selSharedWorkspace)
		path = goString(ws.Send(selFullPathForApp, nsString(name)))
	})
	if path == "" {
		return "", fmt.Errorf("unable to find application named '%s'", name)
	}
	return path, nil
}

// buildOptionDict creates an NSDictionary from LaunchOptions.
func buildOptionDict(opts LaunchOptions) objc.ID {
	dict := objc.ID(clsNSMutableDictionary).Send(selAlloc).Send(selInit)

	dictSetBool(dict, symActivateKey, opts.Activate)
	if opts.Hide {
		dictSetBool(dict, symHideKey, true)
	}
	if !opts.NewInstance {
		dictSetBool(dict, symPreferRunningInstanceKey, true)
	}
	if opts.Fresh {
		dictSetBool(dict, symLaunchWithoutRestoringStateKey, true)
	}
	if len(opts.Arguments) > 0 && symArgumentsKey != 0 {
		arr := objc.ID(clsNSMutableArray).Send(selAlloc).Send(selInitWithCapacity, uintptr(len(opts.Arguments)))
		for _, a := range opts.Arguments {
			arr.Send(selAddObject, nsString(a))
		}
		dictSet(dict, symArgumentsKey, arr)
	}
	if len(opts.Environment) > 0 && symEnvironmentVariablesKey != 0 {
		env := objc.ID(clsNSMutableDictionary).Send(selAlloc).Send(selInit)
		for k, v := range opts.Environment {
			dictSet(env, nsString(k), nsString(v))
		}
		dictSet(dict, symEnvironmentVariablesKey, env)
	}
	if !opts.AddToRecents {
		dictSetBool(dict, symAddToRecentsKey, false)
	}
	return dict
}

type lsOpenResult struct {
	err            uintptr
	alreadyRunning bool
	pid            int
}

// callLSOpen invokes _LSOpenURLsWithCompletionHandler and pumps the run
// loop until the completion handler fires or ctx is done.
func callLSOpen(ctx context.Context, urls, appURL, optDict objc.ID) (lsOpenResult, error) {
	resultCh := make(chan lsOpenResult, 1)

	block := objc.NewBlock(func(_ objc.Block, asn uintptr, alreadyRunning bool, cfErr uintptr) {
		res := lsOpenResult{alreadyRunning: alreadyRunning, err: cfErr}
		if cfErr != 0 {
			fnCFRetain(cfErr)
		}
		if asn != 0 {
			res.pid = getProcessPID(asn)
		}
		resultCh <- res
	})
	defer block.Release()

	fnLSOpenURLsWithCompletionHandler(urls, appURL, optDict, block)

	for {
		select {
		case res := <-resultCh:
			if res.err != 0 {
				defer fnCFRelease(res.err)
				return res, formatLSError(res.err)
			}
			return res, nil
		case <-ctx.Done():
			return lsOpenResult{}, ctx.Err()
		default:
			pumpRunLoop(50 * time.Millisecond)
		}
	}
}

func formatLSError(cfErr uintptr) error {
	domain := goString(fnCFErrorGetDomain(cfErr))
	code := fnCFErrorGetCode(cfErr)
	if desc := cfErrorDescription(cfErr); desc != "" {
		return fmt.Errorf("%s (domain=%s, code=%d)", desc, domain, code)
	}
	return fmt.Errorf("launch failed (domain=%s, code=%d)", domain, code)
}
