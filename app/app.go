package app

import (
	"fmt"
	"log/slog"
	"time"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders
	. "modernc.org/tk9.0"

	"github.com/jhenke/lootscout-go/ui"
)

// tick drives the Tk-side update loop that drains scan events.
const tick = 100 * time.Millisecond

type app struct {
	container *Wiring
	logger    *slog.Logger
	afterID   string

	overlay *ui.Overlay
	status  *ui.StatusBar
}

// NewApp prepares the root window. Start runs the event loop.
func NewApp(c *Wiring, logger *slog.Logger) *app {
	a := &app{container: c, logger: logger}

	App.WmTitle("Loot Scout")
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)
	WmGeometry(App, fmt.Sprintf("%dx%d+100+100", 320, 120))
	WmAttributes(App, "-topmost", 1)
	return a
}

// Start builds the widgets, launches the scan pipeline and blocks until the
// window closes.
func (a *app) Start() {
	cfg := a.container.Config
	a.status = ui.NewStatusBar(a.logger)
	a.overlay = ui.NewOverlay(cfg.OverlayX, cfg.OverlayY, a.logger)
	Pack(Button(Txt("Exit"), Command(a.exitHandler)), Padx("1m"), Pady("1m"))

	if a.container.Suspended {
		a.status.SetSuspended(a.container.Profiles.Supported())
	} else {
		a.status.SetState(a.container.Pipeline.State())
	}

	a.container.Pipeline.Run()
	a.scheduleUpdate()

	App.Wait()
}

// update drains pending scan events and applies them to the widgets. Runs
// on the Tk thread via TclAfter.
func (a *app) update() {
	for {
		select {
		case ev := <-a.container.Events:
			a.apply(ev)
		default:
			a.scheduleUpdate()
			return
		}
	}
}

func (a *app) apply(ev uiEvent) {
	switch ev.kind {
	case eventShow:
		a.overlay.Show(ev.notification)
	case eventHide:
		a.overlay.Hide()
	case eventState:
		a.status.SetState(ev.state)
	}
}

func (a *app) exitHandler() {
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
	}
	a.container.Pipeline.Stop()
	a.container.Close()
	a.overlay.Hide()
	Destroy(App)
}

func (a *app) scheduleUpdate() {
	// Schedule the next update using TclAfter to stay on Tk's event loop thread.
	a.afterID = TclAfter(tick, func() { a.update() })
}
