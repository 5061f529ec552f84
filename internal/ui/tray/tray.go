package tray

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnToggleVisible   func()
	OnAlterOpacity    func()
	OnHideTemporary   func()
	OnEditDates       func()
	OnEditSettings    func()
	OnAddCountdown    func()
	OnReload          func()
	OnToggleAutostart func()
	OnAbout           func()
	OnQuit            func()
}

// Manager handles system tray state.
type Manager struct {
	app           desktop.App
	title         string
	statusItem    *fyne.MenuItem
	visibleItem   *fyne.MenuItem
	autostartItem *fyne.MenuItem
	callbacks     Callbacks
	statusLabel   string
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, title string, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		title:     title,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("Loading...", nil)
	manager.statusItem.Disabled = true

	manager.visibleItem = fyne.NewMenuItem("Show/Hide", invoke(manager.callbacks.OnToggleVisible))
	manager.autostartItem = fyne.NewMenuItem("Start at Login", invoke(manager.callbacks.OnToggleAutostart))

	manager.refreshMenu()
	return manager
}

// Menu returns the current tray menu.
func (manager *Manager) Menu() *fyne.Menu {
	return fyne.NewMenu(manager.title,
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		manager.visibleItem,
		fyne.NewMenuItem("Alter Opacity", invoke(manager.callbacks.OnAlterOpacity)),
		fyne.NewMenuItem("Hide Temporarily", invoke(manager.callbacks.OnHideTemporary)),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Add Countdown...", invoke(manager.callbacks.OnAddCountdown)),
		fyne.NewMenuItem("Edit Dates", invoke(manager.callbacks.OnEditDates)),
		fyne.NewMenuItem("Settings", invoke(manager.callbacks.OnEditSettings)),
		fyne.NewMenuItem("Reload", invoke(manager.callbacks.OnReload)),
		manager.autostartItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("About", invoke(manager.callbacks.OnAbout)),
		fyne.NewMenuItem("Quit", invoke(manager.callbacks.OnQuit)),
	)
}

// SetStatus updates the status line.
func (manager *Manager) SetStatus(status string) {
	manager.statusLabel = status
	manager.statusItem.Label = status
	manager.refreshMenu()
}

// SetVisible updates the show/hide label.
func (manager *Manager) SetVisible(visible bool) {
	if visible {
		manager.visibleItem.Label = "Hide"
	} else {
		manager.visibleItem.Label = "Show"
	}
	manager.refreshMenu()
}

// SetAutostart updates the start-at-login check mark.
func (manager *Manager) SetAutostart(enabled bool) {
	manager.autostartItem.Checked = enabled
	manager.refreshMenu()
}

func invoke(handler func()) func() {
	return func() {
		if handler != nil {
			handler()
		}
	}
}

func (manager *Manager) refreshMenu() {
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(manager.Menu())
	}
}
