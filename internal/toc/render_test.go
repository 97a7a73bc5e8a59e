package toc

import (
	"slices"
	"testing"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name: "simple input",
			input: `
# Test
<!-- BEGIN mktoc -->
<!-- END mktoc -->
## Hello
### World`,
			expected: `<!-- BEGIN mktoc -->

- [Test](#test)
- [Hello](#hello)
  - [World](#world)
<!-- END mktoc -->`,
		},
		{
			name: "all heading levels",
			input: `
# Test 1
## Test 2
### Test 3
#### Test 4
##### Test 5
###### Test 6`,
			expected: `<!-- BEGIN mktoc -->

- [Test 1](#test-1)
- [Test 2](#test-2)
  - [Test 3](#test-3)
    - [Test 4](#test-4)
      - [Test 5](#test-5)
        - [Test 6](#test-6)
<!-- END mktoc -->`,
		},
		{
			name: "code in headings",
			input: `
# Test
## ` + "`Hello`" + `
### World`,
			expected: `<!-- BEGIN mktoc -->

- [Test](#test)
- [` + "`Hello`" + `](#hello)
  - [World](#world)
<!-- END mktoc -->`,
		},
		{
			name: "emoji in headings",
			input: `
# Test
## Hello 🥳
### World`,
			expected: `<!-- BEGIN mktoc -->

- [Test](#test)
- [Hello 🥳](#hello-🥳)
  - [World](#world)
<!-- END mktoc -->`,
		},
		{
			name: "code blocks excluded",
			input: "\n# Test\n## Hello\n\nLorem Ipsum Dolor...\n\n```\n# inline comment\nfn some_func() -> bool {}\n```\n",
			expected: `<!-- BEGIN mktoc -->

- [Test](#test)
- [Hello](#hello)
<!-- END mktoc -->`,
		},
		{
			name:     "no headings",
			input:    "just text",
			expected: "<!-- BEGIN mktoc -->\n\n<!-- END mktoc -->",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Render(Headings(tt.input, 1, 6), DefaultConfig())
			if got != tt.expected {
				t.Errorf("Render() =\n%s\nwant\n%s", got, tt.expected)
			}
		})
	}
}

func TestRender_WrapInDetails(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WrapInDetails = true

	t.Run("wraps list", func(t *testing.T) {
		got := Render(Headings("# Test\n## Hello\n### World", 1, 6), cfg)
		expected := `<!-- BEGIN mktoc -->
<details><summary>Table of Contents</summary>

- [Test](#test)
- [Hello](#hello)
  - [World](#world)

</details>
<!-- END mktoc -->`
		if got != expected {
			t.Errorf("Render() =\n%s\nwant\n%s", got, expected)
		}
	})

	t.Run("strips one four-space run per line", func(t *testing.T) {
		headings := []Heading{
			{Level: 4, Text: "Four"},
			{Level: 5, Text: "Five"},
			{Level: 6, Text: "Six"},
		}
		got := Render(slices.Values(headings), cfg)
		expected := `<!-- BEGIN mktoc -->
<details><summary>Table of Contents</summary>

- [Four](#four)
  - [Five](#five)
    - [Six](#six)

</details>
<!-- END mktoc -->`
		if got != expected {
			t.Errorf("Render() =\n%s\nwant\n%s", got, expected)
		}
	})
}

func TestRender_StartComment(t *testing.T) {
	cfg := Config{MinDepth: 1, MaxDepth: 6, StartComment: `<!-- BEGIN mktoc {"max_depth":2} -->`}
	got := Render(slices.Values([]Heading{{Level: 1, Text: "A"}}), cfg)
	expected := "<!-- BEGIN mktoc {\"max_depth\":2} -->\n\n- [A](#a)\n<!-- END mktoc -->"
	if got != expected {
		t.Errorf("Render() = %q, want %q", got, expected)
	}

	got = Render(slices.Values([]Heading{}), Config{})
	if got != BeginComment+"\n\n"+EndComment {
		t.Errorf("expected bare sentinel for empty StartComment, got %q", got)
	}
}

func TestIndent(t *testing.T) {
	tests := []struct {
		level int
		want  string
	}{
		{1, ""}, {2, ""}, {3, "  "}, {4, "    "}, {5, "      "}, {6, "        "},
	}
	for _, tt := range tests {
		if got := indent(tt.level); got != tt.want {
			t.Errorf("indent(%d) = %q, want %q", tt.level, got, tt.want)
		}
	}
}
