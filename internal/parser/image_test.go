package parser

import "testing"

// TestExtractImageURL covers the formula wrapper, bare URLs and junk cells.
func TestExtractImageURL(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`=IMAGE("https://x/y.webp")`, "https://x/y.webp"},
		{`=image( "https://x/y.png" )`, "https://x/y.png"},
		{`= IMAGE ( "https://x/y.jpg" , 4 )`, "https://x/y.jpg"},
		{`IMAGE("https://x/z.png")`, "https://x/z.png"},
		{"https://x/y.png", "https://x/y.png"},
		{"http://x/y.gif", "http://x/y.gif"},
		{"  https://x/y.png  ", "https://x/y.png"},
		{"not a url", ""},
		{"nan", ""},
		{"", ""},
		{"ftp://x/y.png", ""},
	}

	for _, tc := range cases {
		if got := ExtractImageURL(tc.in); got != tc.want {
			t.Errorf("ExtractImageURL(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
