// Package demoops is a minimum host-side OperationRegistry: a handful of
// reversible encodings (From Hex, From Base64, From Base32, From Octal)
// plus two detective stand-ins (Render Image, Text Encoding Brute Force).
// A real host wires in its own much larger operation catalogue; this one
// exists to exercise the Magic Analyzer end to end without that
// dependency.
package demoops

import (
	"encoding/base32"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shirou/magiclens/buffer"
	"github.com/shirou/magiclens/registry"
)

// delimiterArg returns the textual delimiter an operation should strip
// before decoding, given the conventional ["", "Space"] argument shape.
func delimiterArg(args registry.ArgVector) string {
	if len(args) == 0 {
		return ""
	}
	s, _ := args[0].(string)
	if s == "Space" {
		return " "
	}
	return ""
}

func stripDelimiter(s, delim string) string {
	if delim == "" {
		return strings.TrimSpace(s)
	}
	return strings.Join(strings.Fields(strings.ReplaceAll(s, delim, " ")), "")
}

func fromHex(args registry.ArgVector, input *buffer.ByteBuffer) (*buffer.ByteBuffer, error) {
	s, ok := input.TryUTF8()
	if !ok {
		return nil, errors.New("From Hex: input is not valid UTF-8")
	}
	clean := stripDelimiter(s, delimiterArg(args))
	decoded, err := hex.DecodeString(clean)
	if err != nil {
		return nil, fmt.Errorf("From Hex: %w", err)
	}
	return buffer.New(decoded), nil
}

func fromOctal(args registry.ArgVector, input *buffer.ByteBuffer) (*buffer.ByteBuffer, error) {
	s, ok := input.TryUTF8()
	if !ok {
		return nil, errors.New("From Octal: input is not valid UTF-8")
	}
	fields := strings.Fields(s)
	out := make([]byte, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseUint(f, 8, 8)
		if err != nil {
			return nil, fmt.Errorf("From Octal: %w", err)
		}
		out = append(out, byte(v))
	}
	return buffer.New(out), nil
}

func fromBase64(args registry.ArgVector, input *buffer.ByteBuffer) (*buffer.ByteBuffer, error) {
	s, ok := input.TryUTF8()
	if !ok {
		return nil, errors.New("From Base64: input is not valid UTF-8")
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(s))
	if err != nil {
		decoded, err = base64.RawStdEncoding.DecodeString(strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("From Base64: %w", err)
		}
	}
	return buffer.New(decoded), nil
}

func fromBase32(args registry.ArgVector, input *buffer.ByteBuffer) (*buffer.ByteBuffer, error) {
	s, ok := input.TryUTF8()
	if !ok {
		return nil, errors.New("From Base32: input is not valid UTF-8")
	}
	decoded, err := base32.StdEncoding.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("From Base32: %w", err)
	}
	return buffer.New(decoded), nil
}

// renderImage is a stub standing in for the excluded image-rendering
// operation: it never decodes pixels, it only acknowledges that the bytes
// look like a recognized image container.
func renderImage(args registry.ArgVector, input *buffer.ByteBuffer) (*buffer.ByteBuffer, error) {
	kind := "image"
	if len(args) > 0 {
		if s, ok := args[0].(string); ok {
			kind = s
		}
	}
	return buffer.New([]byte(fmt.Sprintf("<rendered %s, %d bytes>", kind, input.Len()))), nil
}
