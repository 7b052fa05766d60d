package views

import (
	"fmt"
	"strconv"
	"strings"
)

type ReminderItemData struct {
	ID          string
	Title       string
	Description string
	Location    string
}

type RemindersPanelData struct {
	ListView string
	Loading  bool
	Spinner  string
	NoData   bool
}

type SaveReminderPanelData struct {
	TitleView       string
	DescriptionView string
	Location        string
	Latitude        *float64
	Longitude       *float64
	Focused         int
	Saving          bool
}

type SelectLocationPanelData struct {
	NameView      string
	LatitudeView  string
	LongitudeView string
	Focused       int
	ErrorText     string
}

type ReminderDetailData struct {
	ID          string
	Title       string
	Description string
	Location    string
	Latitude    *float64
	Longitude   *float64
	ArrivedAt   string
}

type HelpPanelData struct {
	Screen   string
	Bindings []string
	HelpView string
}

func RenderRemindersPanel(data RemindersPanelData) string {
	var b strings.Builder
	b.WriteString("reminders:\n")
	b.WriteString("actions: [a]add [enter]open [r]reload [/]command\n")
	switch {
	case data.Loading:
		b.WriteString(fmt.Sprintf("%s loading reminders...", data.Spinner))
	case data.NoData:
		b.WriteString("No Data")
	default:
		b.WriteString(data.ListView)
	}
	return strings.TrimSpace(b.String())
}

func RenderSaveReminderPanel(data SaveReminderPanelData) string {
	var b strings.Builder
	b.WriteString("new reminder:\n")
	b.WriteString(fieldLine(data.Focused == 0, "title", data.TitleView))
	b.WriteString(fieldLine(data.Focused == 1, "description", data.DescriptionView))
	location := data.Location
	if location == "" {
		location = "(none, press ctrl+l to select)"
	}
	b.WriteString(fmt.Sprintf("  location: %s\n", location))
	if data.Latitude != nil && data.Longitude != nil {
		b.WriteString(fmt.Sprintf("  coordinates: %s, %s\n", FormatCoordinate(*data.Latitude), FormatCoordinate(*data.Longitude)))
	}
	b.WriteString("actions: [tab]next field [ctrl+l]select location [ctrl+s]save [esc]back\n")
	if data.Saving {
		b.WriteString("saving...")
	}
	return strings.TrimSpace(b.String())
}

func RenderSelectLocationPanel(data SelectLocationPanelData) string {
	var b strings.Builder
	b.WriteString("select location:\n")
	b.WriteString(fieldLine(data.Focused == 0, "name", data.NameView))
	b.WriteString(fieldLine(data.Focused == 1, "latitude", data.LatitudeView))
	b.WriteString(fieldLine(data.Focused == 2, "longitude", data.LongitudeView))
	b.WriteString("actions: [tab]next field [enter]confirm [esc]back\n")
	if data.ErrorText != "" {
		b.WriteString("error: " + data.ErrorText)
	}
	return strings.TrimSpace(b.String())
}

// ReminderDetailMarkdown lays out one reminder for glamour.
func ReminderDetailMarkdown(data ReminderDetailData) string {
	var b strings.Builder
	title := data.Title
	if title == "" {
		title = "(untitled)"
	}
	b.WriteString("# " + title + "\n\n")
	if data.Description != "" {
		b.WriteString(data.Description + "\n\n")
	}
	b.WriteString(fmt.Sprintf("- **Location:** %s\n", data.Location))
	if data.Latitude != nil && data.Longitude != nil {
		b.WriteString(fmt.Sprintf("- **Coordinates:** %s, %s\n", FormatCoordinate(*data.Latitude), FormatCoordinate(*data.Longitude)))
	}
	if data.ArrivedAt != "" {
		b.WriteString(fmt.Sprintf("- **Arrived:** %s\n", data.ArrivedAt))
	}
	b.WriteString(fmt.Sprintf("- **ID:** `%s`\n", data.ID))
	return b.String()
}

func RenderReminderDetailPanel(data ReminderDetailData) string {
	var b strings.Builder
	b.WriteString(RenderMarkdown(ReminderDetailMarkdown(data)))
	b.WriteString("\nactions: [d]delete [esc]back")
	return strings.TrimSpace(b.String())
}

func RenderHelpPanel(data HelpPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("help (%s):\n", data.Screen))
	for _, line := range data.Bindings {
		b.WriteString(line + "\n")
	}
	if data.HelpView != "" {
		b.WriteString(data.HelpView)
	}
	return strings.TrimSpace(b.String())
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: [%s] %s", strings.ToUpper(level), body)
}

func FormatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func fieldLine(focused bool, label, view string) string {
	cursor := " "
	if focused {
		cursor = ">"
	}
	return fmt.Sprintf("%s %s: %s\n", cursor, label, view)
}
