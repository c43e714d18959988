package demoops

import (
	"errors"
	"fmt"

	"github.com/coregx/coregex"

	"github.com/shirou/magiclens/buffer"
	"github.com/shirou/magiclens/registry"
	"github.com/shirou/magiclens/signature"
)

// Registry wires the demo operations into a registry.Registry. It needs
// the signature Catalogue directly (rather than just regex PatternHints)
// for the Text Encoding Brute Force operation, whose candidate argument
// vectors come from the catalogue's codepage detectors rather than a
// single static regex.
type Registry struct {
	static    *registry.Static
	catalogue *signature.Catalogue
}

const (
	opRenderImage            = "Render Image"
	opTextEncodingBruteForce = "Text Encoding Brute Force"
)

// New builds the demo registry over catalogue, used for both PatternHint
// evaluation (file-type detection for Render Image) and the brute-force
// codepage operation.
func New(catalogue *signature.Catalogue) (*Registry, error) {
	hexHint, err := coregex.Compile(`^([0-9A-Fa-f]{2}[ ]?)+[ ]?$`)
	if err != nil {
		return nil, err
	}
	octalHint, err := coregex.Compile(`^([0-7]{1,3}[ ]?)+[ ]?$`)
	if err != nil {
		return nil, err
	}
	base32Hint, err := coregex.Compile(`^[A-Z2-7]{8,}=*$`)
	if err != nil {
		return nil, err
	}
	base64Hint, err := coregex.Compile(`^[A-Za-z0-9+/]{8,}=*$`)
	if err != nil {
		return nil, err
	}

	r := &Registry{catalogue: catalogue}
	r.static = registry.NewStatic(
		registry.StaticEntry{
			Descriptor: registry.Descriptor{
				Name: "From Hex", InputType: registry.Utf8String, OutputType: registry.RawBytes,
				DefaultArgs: registry.ArgVector{""}, MagicUseful: true,
				Hints: []registry.PatternHint{{Pattern: hexHint, Args: registry.ArgVector{"Space"}, Useful: true}},
			},
			Invoke: fromHex,
		},
		registry.StaticEntry{
			Descriptor: registry.Descriptor{
				Name: "From Octal", InputType: registry.Utf8String, OutputType: registry.Utf8String,
				DefaultArgs: registry.ArgVector{""}, MagicUseful: false,
				Hints: []registry.PatternHint{{Pattern: octalHint, Args: registry.ArgVector{"Space"}, Useful: true}},
			},
			Invoke: fromOctal,
		},
		registry.StaticEntry{
			Descriptor: registry.Descriptor{
				Name: "From Base32", InputType: registry.Utf8String, OutputType: registry.Utf8String,
				DefaultArgs: registry.ArgVector{}, MagicUseful: false,
				Hints: []registry.PatternHint{{Pattern: base32Hint, Args: registry.ArgVector{}, Useful: true}},
			},
			Invoke: fromBase32,
		},
		registry.StaticEntry{
			Descriptor: registry.Descriptor{
				Name: "From Base64", InputType: registry.Utf8String, OutputType: registry.Utf8String,
				DefaultArgs: registry.ArgVector{}, MagicUseful: false,
				Hints: []registry.PatternHint{{Pattern: base64Hint, Args: registry.ArgVector{}, Useful: true}},
			},
			Invoke: fromBase64,
		},
		registry.StaticEntry{
			Descriptor: registry.Descriptor{
				// MagicUseful is false: Render Image is a detective op that
				// should only run where the catalogue actually recognized an
				// image signature (renderImageHints below), not by default
				// against every RawBytes node.
				Name: opRenderImage, InputType: registry.RawBytes, OutputType: registry.Utf8String,
				DefaultArgs: registry.ArgVector{}, MagicUseful: false,
			},
			Invoke: renderImage,
		},
		registry.StaticEntry{
			Descriptor: registry.Descriptor{
				Name: opTextEncodingBruteForce, InputType: registry.RawBytes, OutputType: registry.Utf8String,
				DefaultArgs: registry.ArgVector{}, MagicUseful: false,
			},
			Invoke: r.bruteForceEncoding,
		},
	)
	return r, nil
}

func (r *Registry) ListByInputType(t registry.Type) []registry.Descriptor {
	return r.static.ListByInputType(t)
}

func (r *Registry) DefaultArgs(name string) registry.ArgVector {
	return r.static.DefaultArgs(name)
}

// MatchingHints defers to the static regex-driven hints for every operation
// except Render Image and the brute-force one, whose candidate argument
// vectors come straight from the signature Catalogue rather than a
// PatternHint regex: Render Image's shortcut depends on Catalogue.Identify
// (the byte-literal magic-byte matcher, not a Unicode regex — raw JPEG/PNG
// header bytes cannot be expressed as a coregex pattern), and the
// brute-force op's codepages come from DetectEncodings (spec §4.3's fixed
// codepage set).
func (r *Registry) MatchingHints(name string, b *buffer.ByteBuffer) []registry.ArgVector {
	switch name {
	case opRenderImage:
		return r.renderImageHints(b)
	case opTextEncodingBruteForce:
		var hints []registry.ArgVector
		for _, hit := range r.catalogue.DetectEncodings(b, true) {
			hints = append(hints, registry.ArgVector{hit.Name})
		}
		return hints
	default:
		return r.static.MatchingHints(name, b)
	}
}

// renderImageHints fires when the catalogue identifies b as a JPEG or PNG,
// shortcutting straight to the matching Render Image format argument.
func (r *Registry) renderImageHints(b *buffer.ByteBuffer) []registry.ArgVector {
	dt, ok := r.catalogue.Identify(b)
	if !ok {
		return nil
	}
	switch dt.Extension {
	case "jpg":
		return []registry.ArgVector{{"jpeg"}}
	case "png":
		return []registry.ArgVector{{"png"}}
	default:
		return nil
	}
}

func (r *Registry) Invoke(name string, args registry.ArgVector, input *buffer.ByteBuffer) (*buffer.ByteBuffer, error) {
	return r.static.Invoke(name, args, input)
}

func (r *Registry) bruteForceEncoding(args registry.ArgVector, input *buffer.ByteBuffer) (*buffer.ByteBuffer, error) {
	if len(args) == 0 {
		return nil, errors.New("Text Encoding Brute Force: no codepage given")
	}
	name, _ := args[0].(string)
	for _, hit := range r.catalogue.DetectEncodings(input, true) {
		if hit.Name == name {
			return buffer.New([]byte(hit.Decoded)), nil
		}
	}
	return nil, fmt.Errorf("Text Encoding Brute Force: codepage %q did not hit", name)
}
