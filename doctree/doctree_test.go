package doctree

import "testing"

func sampleTree() Node {
	return &BlockContainer{Children: []Node{
		&Heading{Level: 1, Children: []Node{&TextRun{Text: "Title"}}},
		&Paragraph{Children: []Node{
			&TextRun{Text: "See "},
			&Link{Children: []Node{&TextRun{Text: "here"}}, Target: "http://x"},
			&TextRun{Text: "."},
		}},
		&RawBlock{Literal: "<hr/>"},
		&Math{Literal: "x^2", Display: true},
	}}
}

func TestFlattenText(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want string
	}{
		{"text run", &TextRun{Text: "plain"}, "plain"},
		{"link content", &Link{Children: []Node{&TextRun{Text: "visible"}}, Target: "http://x"}, "visible"},
		{"nested containers", sampleTree(), "TitleSee here."},
		{"raw carries no text", &RawBlock{Literal: "<div>"}, ""},
		{"math carries no text", &Math{Literal: "x^2"}, ""},
		{"image carries no text", &Image{Target: "a.png", Alt: "alt"}, ""},
	}
	for _, tt := range tests {
		if got := FlattenText(tt.node); got != tt.want {
			t.Errorf("%s: FlattenText = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestFlattenAll(t *testing.T) {
	nodes := []Node{&TextRun{Text: "a"}, &TextRun{Text: "b"}}
	if got := FlattenAll(nodes); got != "ab" {
		t.Errorf("FlattenAll = %q, want %q", got, "ab")
	}
}

func TestCloneIsDeep(t *testing.T) {
	original := sampleTree().(*BlockContainer)
	clone := Clone(original).(*BlockContainer)

	if !Equal(original, clone) {
		t.Fatal("clone differs from original")
	}

	// Mutating the clone must not reach the original.
	clone.Children[0].(*Heading).Children[0].(*TextRun).Text = "Changed"
	if Equal(original, clone) {
		t.Error("clone shares children with original")
	}
	if original.Children[0].(*Heading).Children[0].(*TextRun).Text != "Title" {
		t.Error("original was mutated through the clone")
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Node
		want bool
	}{
		{"same text", &TextRun{Text: "a"}, &TextRun{Text: "a"}, true},
		{"different text", &TextRun{Text: "a"}, &TextRun{Text: "b"}, false},
		{"different kinds", &TextRun{Text: "a"}, &RawInline{Literal: "a"}, false},
		{"heading level matters", &Heading{Level: 1}, &Heading{Level: 2}, false},
		{"link target matters",
			&Link{Target: "a"}, &Link{Target: "b"}, false},
		{"math display matters",
			&Math{Literal: "x"}, &Math{Literal: "x", Display: true}, false},
		{"deep equality", sampleTree(), sampleTree(), true},
		{"child count matters",
			&Paragraph{Children: []Node{&TextRun{Text: "a"}}},
			&Paragraph{}, false},
	}
	for _, tt := range tests {
		if got := Equal(tt.a, tt.b); got != tt.want {
			t.Errorf("%s: Equal = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestEqualDocuments(t *testing.T) {
	a := &Document{Children: []Node{sampleTree()}}
	b := &Document{Children: []Node{sampleTree()}}
	if !EqualDocuments(a, b) {
		t.Error("expected equal documents")
	}
	b.Children = append(b.Children, &TextRun{Text: "extra"})
	if EqualDocuments(a, b) {
		t.Error("expected unequal documents")
	}
}
