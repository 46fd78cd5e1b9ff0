package osa

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// prelude encodes whatever the program body returns into a JSON envelope.
// Object specifiers become {"$ref": display string}, dates become
// {"$date": ISO-8601} and thrown errors become {"$error": {...}}.
const prelude = `function __xaEncode(v, depth) {
	if (v === undefined || v === null || depth > 16) { return null; }
	if (ObjectSpecifier.hasInstance(v)) { return {"$ref": Automation.getDisplayString(v)}; }
	if (v instanceof Date) { return {"$date": v.toISOString()}; }
	if (Array.isArray(v)) { return v.map(function (x) { return __xaEncode(x, depth + 1); }); }
	if (typeof v === "object") {
		var o = {};
		for (var k in v) { o[k] = __xaEncode(v[k], depth + 1); }
		return o;
	}
	if (typeof v === "function") { return String(v); }
	return v;
}
function run(argv) {
	try {
		var __xaResult = (function (argv) {
%s
		})(argv);
		return JSON.stringify({"ok": __xaEncode(__xaResult, 0)});
	} catch (e) {
		return JSON.stringify({"$error": {"number": e.errorNumber || 0, "message": String(e.message || e)}});
	}
}
`

// Program wraps body, a sequence of JXA statements ending in a return, in
// the encoding prelude.
func Program(body string) Script {
	return Script{
		Language: JavaScript,
		Source:   fmt.Sprintf(prelude, indent(body)),
	}
}

func indent(body string) string {
	lines := strings.Split(strings.TrimSpace(body), "\n")
	for i, l := range lines {
		lines[i] = "\t\t\t" + l
	}
	return strings.Join(lines, "\n")
}

type envelope struct {
	OK    json.RawMessage `json:"ok"`
	Error *struct {
		Number  int    `json:"number"`
		Message string `json:"message"`
	} `json:"$error"`
}

// Decode unwraps the envelope written by a Program and returns the raw JSON
// result, or the error the script threw.
func Decode(out []byte) (json.RawMessage, error) {
	out = bytes.TrimSpace(out)
	if len(out) == 0 {
		return json.RawMessage("null"), nil
	}
	var env envelope
	if err := json.Unmarshal(out, &env); err != nil {
		return nil, fmt.Errorf("decode script result: %w", err)
	}
	if env.Error != nil {
		return nil, &ScriptError{Code: env.Error.Number, Message: cleanMessage(env.Error.Message)}
	}
	if env.OK == nil {
		return json.RawMessage("null"), nil
	}
	return env.OK, nil
}

// RunJXA runs body inside the prelude and returns the decoded result.
func RunJXA(ctx context.Context, r Runner, body string, args ...string) (json.RawMessage, error) {
	s := Program(body)
	s.Args = args
	out, err := r.Run(ctx, s)
	if err != nil {
		return nil, err
	}
	return Decode(out)
}

// RunAppleScript runs an AppleScript source and returns its trimmed output.
func RunAppleScript(ctx context.Context, r Runner, source string, args ...string) (string, error) {
	out, err := r.Run(ctx, Script{Language: AppleScript, Source: source, Args: args})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
