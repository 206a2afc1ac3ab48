package view

import (
	"strconv"
	"strings"
)

// Panel identifies the body shown below the header
type Panel uint8

const (
	PanelHome Panel = iota
	PanelLogs
	PanelStatus
	PanelMetrics

	panelCount
)

// Panels lists every panel in tab order
var Panels = [panelCount]Panel{PanelHome, PanelLogs, PanelStatus, PanelMetrics}

var panelNames = [panelCount]string{
	PanelHome:    "Home",
	PanelLogs:    "Logs",
	PanelStatus:  "Status",
	PanelMetrics: "Metrics",
}

func (p Panel) String() string {
	if p < panelCount {
		return panelNames[p]
	}
	return "Panel(" + strconv.Itoa(int(p)) + ")"
}

// Valid reports whether p is one of the defined panels
func (p Panel) Valid() bool {
	return p < panelCount
}

// ParsePanel resolves a case-insensitive panel name
func ParsePanel(s string) (Panel, bool) {
	for i, name := range panelNames {
		if strings.EqualFold(name, s) {
			return Panel(i), true
		}
	}
	return PanelHome, false
}
