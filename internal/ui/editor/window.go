package editor

import (
	"time"

	"countdown/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window is the form for adding a countdown.
type Window struct {
	window  fyne.Window
	onSave  func(model.EventRecord) error
	name    *widget.Entry
	date    *widget.Entry
	hidden  *widget.Select
	color   *widget.SelectEntry
	message *widget.Label
}

// New creates the add-countdown window. palette feeds the color choices.
func New(app fyne.App, title string, palette []string, onSave func(model.EventRecord) error) *Window {
	window := app.NewWindow(title)

	name := widget.NewEntry()
	name.SetPlaceHolder("Paper deadline")

	date := widget.NewEntry()
	date.SetPlaceHolder(DateLayout)

	hidden := widget.NewSelect(HiddenChoices, nil)

	colors := append([]string{model.RandomColor}, palette...)
	color := widget.NewSelectEntry(colors)

	message := widget.NewLabel("")
	message.Wrapping = fyne.TextWrapWord

	form := widget.NewForm(
		widget.NewFormItem("Name", name),
		widget.NewFormItem("Date", date),
		widget.NewFormItem("Visibility", hidden),
		widget.NewFormItem("Color", color),
	)

	saveButton := widget.NewButton("Save", nil)
	saveButton.Importance = widget.HighImportance
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(layout.NewSpacer(), cancelButton, saveButton)

	content := container.NewBorder(nil, container.NewVBox(message, buttons), nil, nil, form)
	window.SetContent(content)
	window.Resize(fyne.NewSize(380, 240))

	editor := &Window{
		window:  window,
		onSave:  onSave,
		name:    name,
		date:    date,
		hidden:  hidden,
		color:   color,
		message: message,
	}

	saveButton.OnTapped = editor.handleSave
	cancelButton.OnTapped = window.Hide
	window.SetCloseIntercept(window.Hide)

	return editor
}

// Show resets the form and displays the window.
func (editor *Window) Show() {
	editor.setDraft(DefaultDraft(time.Now()))
	editor.window.Show()
	editor.window.RequestFocus()
}

// Draft returns the current form values.
func (editor *Window) Draft() Draft {
	return Draft{
		Name:   editor.name.Text,
		Date:   editor.date.Text,
		Hidden: editor.hidden.Selected,
		Color:  editor.color.Text,
	}
}

func (editor *Window) setDraft(draft Draft) {
	editor.name.SetText(draft.Name)
	editor.date.SetText(draft.Date)
	editor.hidden.SetSelected(draft.Hidden)
	editor.color.SetText(draft.Color)
	editor.message.SetText("")
}

func (editor *Window) handleSave() {
	record, err := editor.Draft().Record()
	if err != nil {
		editor.message.SetText(err.Error())
		return
	}
	if editor.onSave != nil {
		if err := editor.onSave(record); err != nil {
			editor.message.SetText("Could not save: " + err.Error())
			return
		}
	}
	editor.window.Hide()
}
