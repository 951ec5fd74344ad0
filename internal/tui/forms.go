package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/ogrishin/trk/internal/models"
)

// newTrackerForm builds the creation form. Leaving the weekday multiselect
// empty creates an irregular event instead of a habit.
func newTrackerForm(fm *TrackerFormModel) *huh.Form {
	var dayOptions []huh.Option[models.WeekDay]
	for d := models.Monday; d <= models.Sunday; d++ {
		dayOptions = append(dayOptions, huh.NewOption(d.String(), d))
	}

	var emojiOptions []huh.Option[string]
	for _, e := range models.EmojiPalette {
		emojiOptions = append(emojiOptions, huh.NewOption(e, e))
	}

	var colorOptions []huh.Option[models.Color]
	for _, c := range models.Palette {
		colorOptions = append(colorOptions, huh.NewOption(c.Hex(), c))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&fm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("tracker name cannot be empty")
					}
					return nil
				}),
			huh.NewMultiSelect[models.WeekDay]().
				Title("Schedule").
				Description("Leave empty for a one-off event").
				Options(dayOptions...).
				Value(&fm.Days),
			huh.NewSelect[string]().
				Title("Emoji").
				Options(emojiOptions...).
				Value(&fm.Emoji),
			huh.NewSelect[models.Color]().
				Title("Color").
				Options(colorOptions...).
				Value(&fm.Color),
			huh.NewInput().
				Title("Category").
				Value(&fm.Category),
			huh.NewConfirm().
				Title("Pinned").
				Value(&fm.Pinned),
		),
	).WithTheme(huh.ThemeDracula())
}

// buildTracker turns the completed form into a tracker value.
func buildTracker(fm *TrackerFormModel) (models.Tracker, error) {
	var (
		tracker models.Tracker
		err     error
	)
	if len(fm.Days) == 0 {
		tracker, err = models.NewIrregularEvent(fm.Name, fm.Emoji, fm.Color)
	} else {
		tracker, err = models.NewHabit(fm.Name, fm.Emoji, fm.Color, fm.Days)
	}
	if err != nil {
		return models.Tracker{}, err
	}
	tracker.Pinned = fm.Pinned
	return tracker, nil
}
