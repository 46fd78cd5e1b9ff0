// Package plist reads macOS property list files.
package plist

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sys/execabs"
)

// Decode parses an XML property list into plain Go values: map[string]any,
// []any, string, int64, float64, bool, time.Time and []byte. Binary
// property lists are converted with plutil first.
func Decode(ctx context.Context, data []byte) (any, error) {
	if bytes.HasPrefix(data, []byte("bplist")) {
		xmlData, err := toXML(ctx, data)
		if err != nil {
			return nil, err
		}
		data = xmlData
	}
	d := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := d.Token()
		if err != nil {
			return nil, fmt.Errorf("plist: %w", err)
		}
		if se, ok := tok.(xml.StartElement); ok {
			if se.Name.Local != "plist" {
				return decodeValue(d, se)
			}
			return decodeNext(d)
		}
	}
}

func toXML(ctx context.Context, data []byte) ([]byte, error) {
	cmd := execabs.CommandContext(ctx, "plutil", "-convert", "xml1", "-o", "-", "-")
	cmd.Stdin = bytes.NewReader(data)
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("plist: convert binary plist: %w", err)
	}
	return out, nil
}

// decodeNext decodes the next value element, or returns io.EOF at an end
// element.
func decodeNext(d *xml.Decoder) (any, error) {
	for {
		tok, err := d.Token()
		if err != nil {
			return nil, fmt.Errorf("plist: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			return decodeValue(d, t)
		case xml.EndElement:
			return nil, io.EOF
		}
	}
}

func decodeValue(d *xml.Decoder, se xml.StartElement) (any, error) {
	switch se.Name.Local {
	case "dict":
		m := make(map[string]any)
		for {
			k, err := decodeNext(d)
			if err == io.EOF {
				return m, nil
			}
			if err != nil {
				return nil, err
			}
			key, ok := k.(plistKey)
			if !ok {
				return nil, fmt.Errorf("plist: expected key in dict, got %T", k)
			}
			v, err := decodeNext(d)
			if err != nil {
				return nil, fmt.Errorf("plist: value for %q: %w", key, err)
			}
			m[string(key)] = v
		}
	case "array":
		var a []any
		for {
			v, err := decodeNext(d)
			if err == io.EOF {
				return a, nil
			}
			if err != nil {
				return nil, err
			}
			a = append(a, v)
		}
	case "true", "false":
		if err := d.Skip(); err != nil {
			return nil, err
		}
		return se.Name.Local == "true", nil
	}

	var text string
	if err := d.DecodeElement(&text, &se); err != nil {
		return nil, err
	}
	switch se.Name.Local {
	case "key":
		return plistKey(text), nil
	case "string":
		return text, nil
	case "integer":
		return strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	case "real":
		return strconv.ParseFloat(strings.TrimSpace(text), 64)
	case "date":
		return time.Parse(time.RFC3339, strings.TrimSpace(text))
	case "data":
		return base64.StdEncoding.DecodeString(strings.Join(strings.Fields(text), ""))
	}
	return nil, fmt.Errorf("plist: unknown element <%s>", se.Name.Local)
}

type plistKey string
