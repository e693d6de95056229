package render

import "testing"

func TestBeautify(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"empty", "", ""},
		{"blank lines", "  \n\n", ""},
		{"headings", "Title\n=====\n##   Sub ##\ntext\n", "# Title\n\n## Sub\n\ntext\n"},
		{"bullets and ordered", "* a\n* b\n\n1) x\n1) y\n", "- a\n- b\n\n1. x\n2. y\n"},
		{"ordered keeps start", "3. a\n7. b\n", "3. a\n4. b\n"},
		{"nested list", "- a\n    - b\n", "- a\n  - b\n"},
		{"loose list", "- a\n\n- b\n", "- a\n\n- b\n"},
		{"adjacent lists alternate", "- a\n* b\n", "- a\n\n* b\n"},
		{"indented code", "    code\n", "```\ncode\n```\n"},
		{"fence info", "~~~go\nx\n~~~\n", "```go\nx\n```\n"},
		{"fence outgrows content", "````\n```\n````\n", "````\n```\n````\n"},
		{"quote", ">a\n>b\n", "> a\n> b\n"},
		{"quoted list", "> - a\n> - b\n", "> - a\n> - b\n"},
		{"rule and hard break", "a  \nb   \n***\n", "a  \nb\n\n---\n"},
		{
			"table",
			"|a|b|\n|:-|-:|\n|long cell|x|\n",
			"| a         |   b |\n| :-------- | --: |\n| long cell |   x |\n",
		},
		{"link definition", "[x][r]\n\n[r]: http://a.b  \"T\"\n", "[x][r]\n\n[r]: http://a.b \"T\"\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Beautify(tc.src)
			if got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
			if again := Beautify(got); again != got {
				t.Fatalf("not stable: %q became %q", got, again)
			}
		})
	}
}

func TestBeautify_TableCellsPadByDisplayWidth(t *testing.T) {
	got := Beautify("| 名前 | x |\n| --- | --- |\n| a | b |\n")
	want := "| 名前 | x   |\n| ---- | --- |\n| a    | b   |\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
