package totonoo

import "testing"

func TestCurrentRelease(t *testing.T) {
	r, err := CurrentRelease()
	if err != nil {
		t.Fatalf("embedded version: %v", err)
	}
	if got, want := r.String(), Version(); got != want {
		t.Fatalf("round trip: got %q, want %q", got, want)
	}
	if got, want := r.Tag(), "v"+Version(); got != want {
		t.Fatalf("tag: got %q, want %q", got, want)
	}
}

func TestParseRelease(t *testing.T) {
	cases := []struct {
		version string
		want    Release
		ok      bool
	}{
		{version: "0.1.0", want: Release{Minor: 1}, ok: true},
		{version: "1.2.3-alpha.1", want: Release{Major: 1, Minor: 2, Patch: 3, Pre: "alpha.1"}, ok: true},
		{version: "2.0.0+build.7", want: Release{Major: 2, Build: "build.7"}, ok: true},
		{version: "v1.2.3"},
		{version: "1.2"},
		{version: "01.2.3"},
		{version: "1.2.3-rc..1"},
	}

	for _, tc := range cases {
		got, err := ParseRelease(tc.version)
		if (err == nil) != tc.ok {
			t.Fatalf("ParseRelease(%q): err=%v, want ok=%v", tc.version, err, tc.ok)
		}
		if tc.ok && got != tc.want {
			t.Fatalf("ParseRelease(%q): got %+v, want %+v", tc.version, got, tc.want)
		}
	}
}
