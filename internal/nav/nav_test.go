package nav

import "testing"

func TestBuild(t *testing.T) {
	items := Build(Main, "/", "#about")
	if len(items) != len(Main) {
		t.Fatalf("expected %d items, got %d", len(Main), len(items))
	}
	if items[0].Href != "#work" || items[0].Active {
		t.Errorf("unexpected work item: %+v", items[0])
	}
	if !items[1].Active {
		t.Errorf("about should be active: %+v", items[1])
	}
}

func TestHrefWithBasePath(t *testing.T) {
	if got := Href("/portfolio/", AnchorContact); got != "/portfolio/#contact" {
		t.Errorf("got %s", got)
	}
	if got := Href("", AnchorTop); got != "#top" {
		t.Errorf("got %s", got)
	}
}
