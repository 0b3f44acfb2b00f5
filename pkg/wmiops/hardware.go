package wmiops

import "github.com/mscrnt/wmiq/pkg/wmi"

// HardwareInfo reads hardware inventory classes.
type HardwareInfo struct {
	q wmi.Querier
}

// NewHardwareInfo returns a hardware reader over the given querier.
func NewHardwareInfo(q wmi.Querier) *HardwareInfo {
	return &HardwareInfo{q: q}
}

// Baseboard returns the motherboard record, or nil when none is exposed.
func (h *HardwareInfo) Baseboard() (wmi.Record, error) {
	recs, err := h.q.FetchClass("Win32_BaseBoard", nil)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return recs[0], nil
}

// VideoControllers returns the GPUs.
func (h *HardwareInfo) VideoControllers() ([]wmi.Record, error) {
	return h.q.FetchClass("Win32_VideoController", nil)
}

// SoundDevices returns the audio devices.
func (h *HardwareInfo) SoundDevices() ([]wmi.Record, error) {
	return h.q.FetchClass("Win32_SoundDevice", nil)
}

// USBControllers returns the USB controllers.
func (h *HardwareInfo) USBControllers() ([]wmi.Record, error) {
	return h.q.FetchClass("Win32_USBController", nil)
}

// Printers returns the installed printers.
func (h *HardwareInfo) Printers() ([]wmi.Record, error) {
	return h.q.FetchClass("Win32_Printer", nil)
}

// Batteries returns battery records; empty on machines without one.
func (h *HardwareInfo) Batteries() ([]wmi.Record, error) {
	return h.q.FetchClass("Win32_Battery", nil)
}

// PhysicalMemory returns one record per memory module.
func (h *HardwareInfo) PhysicalMemory() ([]wmi.Record, error) {
	return h.q.FetchClass("Win32_PhysicalMemory", nil)
}
