package core

import "testing"

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{
			name: "identical strings",
			a:    "name",
			b:    "name",
			want: 0,
		},
		{
			name: "case is normalized",
			a:    "Name",
			b:    "nAME",
			want: 0,
		},
		{
			name: "surrounding whitespace is normalized",
			a:    "  name ",
			b:    "name",
			want: 0,
		},
		{
			name: "interior whitespace collapses",
			a:    "first   name",
			b:    "First Name",
			want: 0,
		},
		{
			name: "single substitution",
			a:    "name",
			b:    "game",
			want: 1,
		},
		{
			name: "insertion",
			a:    "age",
			b:    "ages",
			want: 1,
		},
		{
			name: "full name vs name",
			a:    "Full Name",
			b:    "Name",
			want: 5,
		},
		{
			name: "empty vs non-empty",
			a:    "",
			b:    "abc",
			want: 3,
		},
		{
			name: "both empty",
			a:    "",
			b:    "",
			want: 0,
		},
		{
			name: "unicode runes count once",
			a:    "héllo",
			b:    "hello",
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.a, tt.b)
			if got != tt.want {
				t.Errorf("Distance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestDistanceSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"Full Name", "Name"},
		{"email address", "Email"},
		{"", "header"},
		{"kitten", "sitting"},
	}

	for _, p := range pairs {
		ab := Distance(p[0], p[1])
		ba := Distance(p[1], p[0])
		if ab != ba {
			t.Errorf("Distance(%q, %q) = %d but Distance(%q, %q) = %d", p[0], p[1], ab, p[1], p[0], ba)
		}
	}
}
