package service

import (
	"reflect"
	"testing"
)

func TestParseStructuredContent(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name           string
		raw            string
		want           StructuredContent
		wantStructured bool
	}{
		{
			name:           "valid structured response",
			raw:            `{"caption": "Hello", "hashtags": ["#a", "#b"]}`,
			want:           StructuredContent{Caption: "Hello", Hashtags: []string{"#a", "#b"}},
			wantStructured: true,
		},
		{
			name:           "fenced structured response",
			raw:            "```json\n{\"caption\": \"Hello\", \"hashtags\": [\"#a\"]}\n```",
			want:           StructuredContent{Caption: "Hello", Hashtags: []string{"#a"}},
			wantStructured: true,
		},
		{
			name:           "empty hashtags array",
			raw:            `{"caption": "Hello", "hashtags": []}`,
			want:           StructuredContent{Caption: "Hello", Hashtags: []string{}},
			wantStructured: true,
		},
		{
			name: "plain text falls back",
			raw:  "Just some text",
			want: StructuredContent{Caption: "Just some text", Hashtags: []string{}},
		},
		{
			name: "missing caption falls back",
			raw:  `{"hashtags": ["#a"]}`,
			want: StructuredContent{Caption: `{"hashtags": ["#a"]}`, Hashtags: []string{}},
		},
		{
			name: "whitespace caption falls back",
			raw:  `{"caption": "   ", "hashtags": ["#a"]}`,
			want: StructuredContent{Caption: `{"caption": "   ", "hashtags": ["#a"]}`, Hashtags: []string{}},
		},
		{
			name: "hashtags null falls back",
			raw:  `{"caption": "Hello", "hashtags": null}`,
			want: StructuredContent{Caption: `{"caption": "Hello", "hashtags": null}`, Hashtags: []string{}},
		},
		{
			name: "hashtags not an array falls back",
			raw:  `{"caption": "Hello", "hashtags": "#a"}`,
			want: StructuredContent{Caption: `{"caption": "Hello", "hashtags": "#a"}`, Hashtags: []string{}},
		},
		{
			name: "hashtags with non-string member falls back",
			raw:  `{"caption": "Hello", "hashtags": ["#a", 1]}`,
			want: StructuredContent{Caption: `{"caption": "Hello", "hashtags": ["#a", 1]}`, Hashtags: []string{}},
		},
		{
			name: "missing hashtags field falls back",
			raw:  `{"caption": "Hello"}`,
			want: StructuredContent{Caption: `{"caption": "Hello"}`, Hashtags: []string{}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, structured := ParseStructuredContent(tc.raw)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("unexpected result: got %#v, want %#v", got, tc.want)
			}
			if structured != tc.wantStructured {
				t.Fatalf("unexpected structured flag: got %v, want %v", structured, tc.wantStructured)
			}
		})
	}
}

func TestStructuredContentFullText(t *testing.T) {
	t.Parallel()

	content := StructuredContent{Caption: "Hello", Hashtags: []string{"#a", "#b"}}
	if got := content.FullText(); got != "Hello\n\n#a #b" {
		t.Fatalf("unexpected full text: %q", got)
	}

	plain := StructuredContent{Caption: "Just some text", Hashtags: []string{}}
	if got := plain.FullText(); got != "Just some text" {
		t.Fatalf("full text without hashtags should equal caption, got %q", got)
	}
}
