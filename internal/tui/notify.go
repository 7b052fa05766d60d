package tui

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/sandeepkv93/locrem/internal/geofence"
)

type DesktopNotifier interface {
	Send(Notification) error
}

type NoopDesktopNotifier struct{}

func (NoopDesktopNotifier) Send(Notification) error { return nil }

// ExecDesktopNotifier shells out to notify-send on linux and osascript on macOS.
type ExecDesktopNotifier struct{}

func (ExecDesktopNotifier) Send(n Notification) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", n.Title, n.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

func escapeAppleScript(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

func levelFromError(isErr bool) string {
	if isErr {
		return "error"
	}
	return "info"
}

func (m *Model) notify(title, body, level string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	n := Notification{
		Title: title,
		Body:  body,
		Level: level,
		At:    time.Now().UTC(),
	}
	m.Notifications = append(m.Notifications, n)
	if len(m.Notifications) > 40 {
		m.Notifications = m.Notifications[len(m.Notifications)-40:]
	}
	if m.desktopEnabled && m.notifier != nil {
		if err := m.notifier.Send(n); err != nil {
			m.logger.Warn("desktop notification failed", "err", err)
		}
	}
}

// onGeofenceEvent records a transition and raises a notification on arrival.
func (m *Model) onGeofenceEvent(ev geofence.Event) {
	m.Arrivals = append(m.Arrivals, ev)
	if len(m.Arrivals) > 20 {
		m.Arrivals = m.Arrivals[len(m.Arrivals)-20:]
	}
	m.logger.Info("geofence transition", "id", ev.RegionID, "transition", ev.Transition, "distance_m", ev.DistanceMeters)
	if ev.Transition != geofence.TransitionEnter {
		return
	}
	body := fmt.Sprintf("arrived: %s (/show %s)", m.reminderTitle(ev.RegionID), ev.RegionID)
	m.Status = StatusBar{Text: body}
	m.notify("Location Reminder", body, "info")
}
