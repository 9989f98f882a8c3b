package games

import (
	"strings"
	"testing"
)

func TestCatalogDefaultsWhenEmpty(t *testing.T) {
	c := NewCatalog(nil)
	if len(c.Games()) == 0 {
		t.Fatal("empty catalog")
	}
}

func TestPickerHTMLListsEveryGame(t *testing.T) {
	c := NewCatalog([]Game{
		{WASMPath: "/wasm/a/a.js", Image: "/frontend/bg/a.png", Name: "ALPHA"},
		{WASMPath: "/wasm/b/b.js", Image: "/frontend/bg/b.png", Name: "BETA"},
	})
	html, err := c.PickerHTML()
	if err != nil {
		t.Fatalf("picker html: %v", err)
	}
	for _, name := range []string{"ALPHA", "BETA"} {
		if !strings.Contains(html, name) {
			t.Fatalf("picker missing %s: %s", name, html)
		}
	}
	if !strings.Contains(html, `hx-get="sports/ALPHA"`) {
		t.Fatalf("picker missing sports link: %s", html)
	}
}

func TestScenePageEmbedsWASMPath(t *testing.T) {
	g := Game{WASMPath: "/wasm/cube/out/cube.js", Image: "/frontend/bg/cube.png", Name: "THE_CUBE"}
	page, err := g.ScenePage()
	if err != nil {
		t.Fatalf("scene page: %v", err)
	}
	if !strings.Contains(page, g.WASMPath) || !strings.Contains(page, g.Name) {
		t.Fatal("scene page missing wasm path or title")
	}
}

func TestFindMatchesByContainedName(t *testing.T) {
	c := NewCatalog(nil)
	if _, ok := c.Find("THE_CUBE"); !ok {
		t.Fatal("exact name not found")
	}
	if _, ok := c.Find("play-THE_CUBE-now"); !ok {
		t.Fatal("containing path not matched")
	}
	if _, ok := c.Find("NOPE"); ok {
		t.Fatal("unknown game matched")
	}
}
