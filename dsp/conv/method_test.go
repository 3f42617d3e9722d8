package conv

import (
	"errors"
	"slices"
	"testing"
)

func TestMethodString(t *testing.T) {
	tests := []struct {
		method Method
		want   string
	}{
		{MethodInputSide, "input-side"},
		{MethodOutputSide, "output-side"},
		{MethodFastMultiply, "fast-multiply"},
		{MethodSpectral, "spectral"},
		{MethodFramedSpectral(4096), "framed-spectral(4096)"},
		{MethodParallelFramedSpectral(512, 4), "parallel-framed-spectral(512,4)"},
		{Method{}, "Method(0)"},
	}

	for _, tt := range tests {
		if got := tt.method.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestMethodAccessors(t *testing.T) {
	m := MethodParallelFramedSpectral(256, 3)
	if m.Name() != "parallel-framed-spectral" {
		t.Errorf("Name() = %q", m.Name())
	}
	if m.FrameSize() != 256 {
		t.Errorf("FrameSize() = %d, want 256", m.FrameSize())
	}
	if m.Workers() != 3 {
		t.Errorf("Workers() = %d, want 3", m.Workers())
	}

	if MethodSpectral.FrameSize() != 0 {
		t.Errorf("spectral FrameSize() = %d, want 0", MethodSpectral.FrameSize())
	}
}

func TestMethodValid(t *testing.T) {
	for _, m := range allMethods(8) {
		if !m.Valid() {
			t.Errorf("%v reported invalid", m)
		}
	}

	if (Method{}).Valid() {
		t.Error("zero Method reported valid")
	}
	if (Method{kind: kindParallelFramedSpectral + 1}).Valid() {
		t.Error("out-of-range Method reported valid")
	}
}

func TestParseMethod(t *testing.T) {
	tests := []struct {
		name string
		want Method
	}{
		{"input-side", MethodInputSide},
		{"output-side", MethodOutputSide},
		{"fast-multiply", MethodFastMultiply},
		{"karatsuba", MethodFastMultiply},
		{"spectral", MethodSpectral},
		{"FFT", MethodSpectral},
		{"framed-spectral", MethodFramedSpectral(1024)},
		{" ola ", MethodFramedSpectral(1024)},
		{"overlap-add", MethodFramedSpectral(1024)},
		{"parallel-framed-spectral", MethodParallelFramedSpectral(1024, 2)},
	}

	for _, tt := range tests {
		got, err := ParseMethod(tt.name, 1024, 2)
		if err != nil {
			t.Errorf("ParseMethod(%q): %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMethod(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}

	if _, err := ParseMethod("winograd", 0, 0); !errors.Is(err, ErrUnknownMethod) {
		t.Errorf("expected ErrUnknownMethod, got %v", err)
	}
}

func TestMethodNamesRoundTrip(t *testing.T) {
	names := MethodNames()
	if len(names) != 6 {
		t.Fatalf("MethodNames() returned %d names", len(names))
	}

	for _, name := range names {
		m, err := ParseMethod(name, 64, 1)
		if err != nil {
			t.Fatalf("ParseMethod(%q): %v", name, err)
		}
		if m.Name() != name {
			t.Errorf("ParseMethod(%q).Name() = %q", name, m.Name())
		}
	}

	// The returned slice is a copy.
	names[0] = "changed"
	if slices.Contains(MethodNames(), "changed") {
		t.Error("MethodNames exposes internal state")
	}
}
