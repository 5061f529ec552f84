package main

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"

	"countdown/internal/core/countdown"
	"countdown/internal/core/model"
	"countdown/internal/platform"
	"countdown/internal/storage"
	"countdown/internal/ui/editor"
	"countdown/internal/ui/overlay"
	"countdown/internal/ui/tray"
	"countdown/internal/watcher"
	"countdown/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	fynestorage "fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

func runWidget(paths appPaths, launchArgs []string) error {
	instanceKey := appName + "|" + paths.DataDir
	guard, err := platform.AcquireSingleInstance(instanceKey)
	if err != nil {
		log.Printf("single instance: %v", err)
		if activateErr := platform.Activate(instanceKey); activateErr != nil {
			log.Printf("single instance: %v", activateErr)
		}
		return nil
	}
	defer func() {
		_ = guard.Release()
	}()

	configStore, projector, err := loadCore(paths, countdown.Options{})
	if err != nil {
		return err
	}
	config := configStore.Config()
	opacity := config.Display.Opacity

	state, err := storage.LoadWidgetState(paths.State, storage.WidgetState{
		OpacityLevel: opacity.DefaultLevel,
		Visible:      true,
	})
	if err != nil {
		log.Printf("[state] %v", err)
	}

	fyneApp := app.NewWithID("com.countdown.widget")
	icon := resources.MustIcon("countdown.svg")
	fyneApp.SetIcon(icon)
	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		return errors.New("system tray unsupported on this platform")
	}

	aboutWindow := fyneApp.NewWindow("About " + appName)
	aboutWindow.SetContent(widget.NewLabel(fmt.Sprintf("%s keeps upcoming dates in view.\n\nDates: %s\nConfig: %s", appName, paths.Dates, paths.Config)))
	aboutWindow.SetCloseIntercept(func() {
		aboutWindow.Hide()
	})
	aboutWindow.Hide()
	desktopApp.SetSystemTrayWindow(aboutWindow)

	overlayWindow := overlay.New(fyneApp, overlay.Config{
		Title:   appName,
		Font:    config.Display.Font,
		Opacity: opacity.Level(state.OpacityLevel),
	})

	refresher := countdown.NewRefresher(projector, countdown.Config{UpdateInterval: config.Display.UpdateInterval})
	datesWatcher, err := watcher.New(paths.Dates)
	if err != nil {
		log.Printf("[watcher] %v", err)
	}

	saveState := func() {
		if err := storage.SaveWidgetState(paths.State, state); err != nil {
			log.Printf("[state] %v", err)
		}
	}
	alterOpacity := func() {
		state.OpacityLevel = opacity.Next(state.OpacityLevel)
		overlayWindow.SetOpacity(opacity.Level(state.OpacityLevel))
		saveState()
	}
	hideTemporarily := func() {
		overlayWindow.HideFor(config.Display.TmpHideInterval)
	}
	overlayWindow.SetOnDoubleTapped(alterOpacity)
	overlayWindow.SetOnSecondaryTapped(hideTemporarily)

	editorWindow := editor.New(fyneApp, "Add Countdown", config.Display.BgColors, refresher.Append)
	service := platform.NewService()
	if enabled, err := service.AutostartEnabled(appName); err != nil {
		log.Printf("[autostart] %v", err)
	} else {
		state.Autostart = enabled
	}

	var trayManager *tray.Manager
	trayManager = tray.New(desktopApp, appName, tray.Callbacks{
		OnToggleVisible: func() {
			state.Visible = overlayWindow.Toggle()
			trayManager.SetVisible(state.Visible)
			saveState()
		},
		OnAlterOpacity:  alterOpacity,
		OnHideTemporary: hideTemporarily,
		OnEditDates: func() {
			openFile(fyneApp, paths.Dates)
		},
		OnEditSettings: func() {
			openFile(fyneApp, paths.Config)
		},
		OnAddCountdown: func() {
			editorWindow.Show()
		},
		OnReload: func() {
			refresher.Reload()
		},
		OnToggleAutostart: func() {
			enabled, err := toggleAutostart(service, !state.Autostart, launchArgs)
			if err != nil {
				log.Printf("[autostart] %v", err)
				return
			}
			state.Autostart = enabled
			trayManager.SetAutostart(enabled)
			saveState()
		},
		OnAbout: func() {
			aboutWindow.Show()
		},
		OnQuit: func() {
			fyneApp.Quit()
		},
	})

	desktopApp.SetSystemTrayIcon(icon)
	trayManager.SetVisible(state.Visible)
	trayManager.SetAutostart(state.Autostart)

	guard.Serve(func() {
		fyne.Do(func() {
			state.Visible = true
			overlayWindow.Show()
			trayManager.SetVisible(true)
			saveState()
		})
	})

	events := refresher.Subscribe(5)
	go func() {
		for event := range events {
			fyne.Do(func() {
				handleRefresherEvent(event, overlayWindow, trayManager)
			})
		}
	}()

	if err := refresher.Start(); err != nil {
		return err
	}
	if datesWatcher != nil {
		if err := datesWatcher.Start(); err != nil {
			log.Printf("[watcher] %v", err)
		}
		go func() {
			for range datesWatcher.Events() {
				refresher.Reload()
			}
		}()
	}

	if state.Visible {
		overlayWindow.Show()
	}
	fyneApp.Run()

	refresher.Stop()
	if datesWatcher != nil {
		datesWatcher.Stop()
	}
	saveState()
	return nil
}

func handleRefresherEvent(event countdown.Event, overlayWindow *overlay.Window, trayManager *tray.Manager) {
	switch event.Type {
	case countdown.EventReloadError:
		log.Printf("[refresher] reload failed: %v", event.Err)
		trayManager.SetStatus("dates.json has errors, keeping last list")
		return
	case countdown.EventSaved:
		log.Printf("[refresher] saved countdown list")
	}
	overlayWindow.SetLabels(event.Labels)
	trayManager.SetStatus(statusLine(event.Labels))
}

func statusLine(labels []model.Label) string {
	switch len(labels) {
	case 0:
		return "No upcoming dates"
	case 1:
		return "1 countdown shown"
	default:
		return fmt.Sprintf("%d countdowns shown", len(labels))
	}
}

func openFile(fyneApp fyne.App, path string) {
	target, err := url.Parse(fynestorage.NewFileURI(path).String())
	if err != nil {
		log.Printf("open %s: %v", path, err)
		return
	}
	if err := fyneApp.OpenURL(target); err != nil {
		log.Printf("open %s: %v", path, err)
	}
}

func toggleAutostart(service platform.Service, enable bool, launchArgs []string) (bool, error) {
	if !enable {
		if err := service.DisableAutostart(appName); err != nil {
			return true, err
		}
		return false, nil
	}
	execPath, err := os.Executable()
	if err != nil {
		return false, fmt.Errorf("resolve executable: %w", err)
	}
	entry := platform.AutostartEntry{Name: appName, ExecPath: execPath, Args: launchArgs}
	if err := service.EnableAutostart(entry); err != nil {
		return false, err
	}
	return true, nil
}
