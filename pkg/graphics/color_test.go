package graphics

import "testing"

func TestColor_PackedChannelOrder(t *testing.T) {
	c := RGBA8(0x11, 0x22, 0x33, 0x44)
	if c != Color(0x44112233) {
		t.Fatalf("expected 0x44112233, got %#08x", uint32(c))
	}
}

func TestRGB_IsOpaque(t *testing.T) {
	c := RGB(10, 20, 30)
	if c.Alpha() != 1 {
		t.Fatalf("expected alpha 1, got %g", c.Alpha())
	}
}

func TestRGBA_RoundsFractionalAlpha(t *testing.T) {
	c := RGBA(0, 0, 0, 0.5)
	if got := uint8(c >> 24); got != 128 {
		t.Fatalf("expected alpha 0.5 to round to byte 128, got %d", got)
	}
}

func TestRGBA_ClampsAlphaRange(t *testing.T) {
	if c := RGBA(0, 0, 0, 1.5); uint8(c>>24) != 255 {
		t.Fatal("expected alpha above 1 clamped to opaque")
	}
	if c := RGBA(0, 0, 0, -0.5); uint8(c>>24) != 0 {
		t.Fatal("expected alpha below 0 clamped to transparent")
	}
}

func TestWithAlpha_PreservesRGB(t *testing.T) {
	c := ColorRed.WithAlpha(0)
	if c != Color(0x00FF0000) {
		t.Fatalf("expected only the alpha byte replaced, got %#08x", uint32(c))
	}
	if !c.IsTransparent() {
		t.Fatal("expected zero alpha to report transparent")
	}
}

func TestRGBAF_NormalizesChannels(t *testing.T) {
	r, g, b, a := ColorWhite.RGBAF()
	if r != 1 || g != 1 || b != 1 || a != 1 {
		t.Fatalf("expected all channels 1.0 for white, got %g %g %g %g", r, g, b, a)
	}
	r, _, _, a = Color(0x80FF0000).RGBAF()
	if r != 1 {
		t.Fatalf("expected red channel 1.0, got %g", r)
	}
	if a <= 0.5 || a >= 0.51 {
		t.Fatalf("expected alpha near 0.502, got %g", a)
	}
}

func TestNRGBA_MatchesChannels(t *testing.T) {
	n := RGBA8(1, 2, 3, 4).NRGBA()
	if n.R != 1 || n.G != 2 || n.B != 3 || n.A != 4 {
		t.Fatalf("expected channels carried over, got %+v", n)
	}
}
