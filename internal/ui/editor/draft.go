package editor

import (
	"fmt"
	"strings"
	"time"

	"countdown/internal/core/model"
)

// DateLayout is the date format accepted by the form.
const DateLayout = "2006-01-02"

// Hidden policy choices shown in the form.
const (
	HiddenChoiceShow = "Always show"
	HiddenChoiceHide = "Always hide"
	HiddenChoiceAuto = "Show when close"
)

// HiddenChoices lists the policy options in display order.
var HiddenChoices = []string{HiddenChoiceShow, HiddenChoiceAuto, HiddenChoiceHide}

// Draft holds the raw form values for a new countdown.
type Draft struct {
	Name   string
	Date   string
	Hidden string
	Color  string
}

// DefaultDraft returns an empty draft dated one week from now.
func DefaultDraft(now time.Time) Draft {
	return Draft{
		Date:   now.AddDate(0, 0, 7).Format(DateLayout),
		Hidden: HiddenChoiceShow,
		Color:  model.RandomColor,
	}
}

// Record validates the draft and converts it to an EventRecord.
func (draft Draft) Record() (model.EventRecord, error) {
	name := strings.TrimSpace(draft.Name)
	if name == "" {
		return model.EventRecord{}, fmt.Errorf("name is required")
	}

	date, err := time.Parse(DateLayout, strings.TrimSpace(draft.Date))
	if err != nil {
		return model.EventRecord{}, fmt.Errorf("date must look like 2026-12-31")
	}

	hidden, err := parseHiddenChoice(draft.Hidden)
	if err != nil {
		return model.EventRecord{}, err
	}

	color := strings.TrimSpace(draft.Color)
	if strings.EqualFold(color, model.RandomColor) {
		color = model.RandomColor
	}

	return model.EventRecord{
		Name:    name,
		Year:    date.Year(),
		Month:   int(date.Month()),
		Day:     date.Day(),
		Hidden:  hidden,
		BgColor: color,
	}, nil
}

func parseHiddenChoice(choice string) (model.HiddenPolicy, error) {
	switch choice {
	case HiddenChoiceShow, "":
		return model.HiddenNever, nil
	case HiddenChoiceHide:
		return model.HiddenAlways, nil
	case HiddenChoiceAuto:
		return model.HiddenAuto, nil
	default:
		return model.ParseHiddenPolicy(choice)
	}
}
