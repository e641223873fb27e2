package ui

import (
	"fmt"
	"log/slog"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders
	. "modernc.org/tk9.0"

	"github.com/jhenke/lootscout-go/domain/scanner"
)

// Overlay renders the current item notification in a small borderless
// window pinned above the game. Methods must run on the Tk event loop
// thread; the scan loops hand notifications over through the app's update
// loop, never directly.
type Overlay struct {
	x, y   int
	logger *slog.Logger

	win    *ToplevelWidget
	name   *LabelWidget
	action *LabelWidget
	notes  *LabelWidget
}

// NewOverlay positions the overlay at the given screen coordinates.
func NewOverlay(x, y int, logger *slog.Logger) *Overlay {
	return &Overlay{x: x, y: y, logger: logger}
}

// Show displays the notification, replacing whatever was visible.
func (o *Overlay) Show(n scanner.Notification) {
	if o.win == nil {
		o.build()
	}
	bg := ActionColor(n.Item.Action)
	fg := TextColorFor(bg)

	// Guard against panic if the window was destroyed underneath us.
	defer func() { _ = recover() }()
	o.name.Configure(Txt(n.Item.Name))
	o.action.Configure(Txt(n.Item.Action), Background(bg), Foreground(fg))
	notes := noteText(n)
	o.notes.Configure(Txt(notes))
	if o.logger != nil {
		o.logger.Debug("overlay shown", slog.String("item", n.Item.Name))
	}
}

// Hide tears the overlay window down.
func (o *Overlay) Hide() {
	if o.win == nil {
		return
	}
	func() { defer func() { _ = recover() }(); Destroy(o.win) }()
	o.win = nil
	o.name = nil
	o.action = nil
	o.notes = nil
}

func (o *Overlay) build() {
	win := App.Toplevel(Borderwidth(2), Background(ColorWindowBg))
	win.WmTitle("Loot Scout")
	WmGeometry(win.Window, fmt.Sprintf("+%d+%d", o.x, o.y))
	WmAttributes(win.Window, "-topmost", 1)
	WmAttributes(win.Window, "-toolwindow", true)
	WmAttributes(win.Window, "-alpha", 0.9)

	o.name = win.Label(Txt(""), Background(ColorWindowBg), Foreground(ColorTextLite))
	Pack(o.name, Padx("2m"), Pady("1m"))
	o.action = win.Label(Txt(""), Borderwidth(1), Relief("ridge"))
	Pack(o.action, Padx("2m"), Pady("1m"))
	o.notes = win.Label(Txt(""), Background(ColorWindowBg), Foreground(ColorTextLite))
	Pack(o.notes, Padx("2m"), Pady("1m"))

	o.win = win
}

// noteText renders the entry's notes line: what the item recycles into or
// what it is kept for.
func noteText(n scanner.Notification) string {
	switch {
	case n.Item.RecycleFor != "":
		return "recycles into: " + n.Item.RecycleFor
	case n.Item.KeepFor != "":
		return "keep for: " + n.Item.KeepFor
	default:
		return ""
	}
}
