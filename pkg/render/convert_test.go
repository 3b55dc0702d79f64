package render

import (
	"bytes"
	"context"
	"testing"

	"github.com/matzehuels/bookrack/pkg/errors"
)

const tinySVG = `<svg xmlns="http://www.w3.org/2000/svg" width="4" height="4"><rect width="4" height="4" fill="#eee1d1"/></svg>`

func TestToPDFWithoutConverter(t *testing.T) {
	if ConverterAvailable() {
		t.Skip(ConverterBinary + " is installed")
	}
	_, err := ToPDF(context.Background(), []byte(tinySVG))
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("ToPDF err = %v, want UNSUPPORTED", err)
	}
}

func TestToPDF(t *testing.T) {
	if !ConverterAvailable() {
		t.Skip(ConverterBinary + " not installed")
	}
	pdf, err := ToPDF(context.Background(), []byte(tinySVG))
	if err != nil {
		t.Fatalf("ToPDF: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Errorf("output does not start with %%PDF: %q", pdf[:min(len(pdf), 8)])
	}
}

func TestToPNG(t *testing.T) {
	if !ConverterAvailable() {
		t.Skip(ConverterBinary + " not installed")
	}
	png, err := ToPNG(context.Background(), []byte(tinySVG), 2)
	if err != nil {
		t.Fatalf("ToPNG: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}
}
