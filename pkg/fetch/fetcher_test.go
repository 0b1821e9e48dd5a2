package fetch

import "testing"

func TestFlattenHTML(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "strips script and style",
			raw:  `<html><head><style>body{color:red}</style></head><body><script>alert(1)</script><p>Hello</p><p>world</p></body></html>`,
			want: "Hello world",
		},
		{
			name: "strips noscript",
			raw:  `<body><noscript>enable js</noscript><div>content here</div></body>`,
			want: "content here",
		},
		{
			name: "trims text nodes",
			raw:  "<p>  spaced \n out  </p><span>text</span>",
			want: "spaced \n out text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FlattenHTML(tt.raw); got != tt.want {
				t.Errorf("FlattenHTML() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWordCount(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"   ", 0},
		{"one", 1},
		{"one two\nthree\tfour", 4},
	}

	for _, tt := range tests {
		if got := WordCount(tt.text); got != tt.want {
			t.Errorf("WordCount(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}
