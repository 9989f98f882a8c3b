// Package games holds the catalog of playable games and renders the
// HTML fragments the picker UI swaps in.
package games

import (
	"html/template"
	"strings"
)

// Game is one playable entry: a compiled WASM bundle plus its picker
// artwork.
type Game struct {
	WASMPath string
	Image    string
	Name     string
}

// Defaults is the built-in catalog used when the config lists none.
var Defaults = []Game{
	{
		WASMPath: "/wasm/cube/out/cube.js",
		Image:    "/frontend/bg/cube.png",
		Name:     "THE_CUBE",
	},
}

var boxTmpl = template.Must(template.New("box").Parse(`
<div class="game-box" hx-get="sports/{{.Name}}" hx-target="body">
    <img src="{{.Image}}" alt="{{.Name}}" class="game-thumbnail" />
    <div class="game-name">{{.Name}}</div>
</div>
`))

var sceneTmpl = template.Must(template.New("scene").Parse(`<!DOCTYPE html>
<html>
    <head>
        <meta charset="UTF-8" />
        <link rel="stylesheet" href="frontend/style/game.css">
    </head>
    <body>
        <title>{{.Name}}</title>
        <div class="loader"></div>
        <script>
            (function () {
                const audioContextList = [];

                const userInputEventNames = [
                    "click", "contextmenu", "auxclick", "dblclick",
                    "mousedown", "mouseup", "pointerup", "touchend",
                    "keydown", "keyup",
                ];

                self.AudioContext = new Proxy(self.AudioContext, {
                    construct(target, args) {
                        const result = new target(...args);
                        audioContextList.push(result);
                        return result;
                    },
                });

                function resumeAllContexts(_event) {
                    let count = 0;
                    audioContextList.forEach((context) => {
                        if (context.state !== "running") {
                            context.resume();
                        } else {
                            count++;
                        }
                    });
                    if (count > 0 && count === audioContextList.length) {
                        userInputEventNames.forEach((eventName) => {
                            document.removeEventListener(eventName, resumeAllContexts);
                        });
                    }
                }

                userInputEventNames.forEach((eventName) => {
                    document.addEventListener(eventName, resumeAllContexts);
                });
            })();
        </script>
        <script type="module">
            import init from '{{.WASMPath}}'
            init();
        </script>
    </body>
</html>
`))

// Catalog is the fixed set of games this deployment serves.
type Catalog struct {
	games []Game
}

func NewCatalog(games []Game) *Catalog {
	if len(games) == 0 {
		games = Defaults
	}
	return &Catalog{games: games}
}

func (c *Catalog) Games() []Game {
	return c.games
}

// Find matches the way picker links address games: the request path
// contains the game name.
func (c *Catalog) Find(name string) (Game, bool) {
	for _, g := range c.games {
		if strings.Contains(name, g.Name) {
			return g, true
		}
	}
	return Game{}, false
}

// PickerHTML renders every game as a clickable box fragment.
func (c *Catalog) PickerHTML() (string, error) {
	var b strings.Builder
	for _, g := range c.games {
		if err := boxTmpl.Execute(&b, g); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

// ScenePage renders the full gameplay page that bootstraps g's WASM
// module. The audio-context shim is required before any game sound can
// start from a user gesture.
func (g Game) ScenePage() (string, error) {
	var b strings.Builder
	if err := sceneTmpl.Execute(&b, g); err != nil {
		return "", err
	}
	return b.String(), nil
}
