package views

import (
	"strings"
	"testing"
)

func TestRenderRemindersPanelStates(t *testing.T) {
	out := RenderRemindersPanel(RemindersPanelData{Loading: true, Spinner: "*"})
	if !strings.Contains(out, "loading reminders") {
		t.Fatalf("expected loading text: %q", out)
	}
	out = RenderRemindersPanel(RemindersPanelData{NoData: true, ListView: "stale"})
	if !strings.Contains(out, "No Data") || strings.Contains(out, "stale") {
		t.Fatalf("expected no data text only: %q", out)
	}
	out = RenderRemindersPanel(RemindersPanelData{ListView: "pier_39 title"})
	if !strings.Contains(out, "pier_39 title") {
		t.Fatalf("expected list view: %q", out)
	}
}

func TestRenderSaveReminderPanel(t *testing.T) {
	lat, lng := 37.819927, -122.478256
	out := RenderSaveReminderPanel(SaveReminderPanelData{
		TitleView: "golden_gate_bridge title",
		Location:  "golden_gate_bridge",
		Latitude:  &lat,
		Longitude: &lng,
		Focused:   0,
	})
	for _, want := range []string{"> title: golden_gate_bridge title", "location: golden_gate_bridge", "37.819927, -122.478256"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in %q", want, out)
		}
	}
	out = RenderSaveReminderPanel(SaveReminderPanelData{})
	if !strings.Contains(out, "(none, press ctrl+l to select)") {
		t.Fatalf("expected location placeholder: %q", out)
	}
}

func TestReminderDetailMarkdown(t *testing.T) {
	lat, lng := 37.808674, -122.409821
	md := ReminderDetailMarkdown(ReminderDetailData{
		ID:          "rem-1",
		Title:       "pier_39 title",
		Description: "pier_39 desc",
		Location:    "pier_39",
		Latitude:    &lat,
		Longitude:   &lng,
	})
	for _, want := range []string{"# pier_39 title", "pier_39 desc", "**Location:** pier_39", "37.808674, -122.409821", "`rem-1`"} {
		if !strings.Contains(md, want) {
			t.Fatalf("missing %q in %q", want, md)
		}
	}
}

func TestRenderAppIncludesSections(t *testing.T) {
	out := RenderApp(AppData{
		Header:       "locrem | screen: reminders",
		Body:         "body text",
		StatusLine:   "status: ok",
		Notification: "notification: [INFO] arrived",
		Footer:       "keys",
	})
	for _, want := range []string{"locrem | screen: reminders", "body text", "status: ok", "arrived", "keys"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in %q", want, out)
		}
	}
}
