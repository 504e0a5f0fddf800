package tui

import "time"

// tickMsg is sent every second to refresh the "updated" header
type tickMsg time.Time

// pageChangedMsg is sent when a poller or the command submitter wrote a region
type pageChangedMsg struct{}

// commandDoneMsg is sent when a submitted command finished rendering
type commandDoneMsg struct {
	command string
}

// refreshDoneMsg is sent when a manual refresh completed
type refreshDoneMsg struct {
	err error
}
