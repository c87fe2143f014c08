package entity

import (
	"github.com/joseph-ayodele/laptop-specs/constants"
)

// Attributes is a structured spec field: optional keys, heterogeneous values.
type Attributes map[string]any

// Clone returns a shallow copy; slice values are copied too.
func (a Attributes) Clone() Attributes {
	if a == nil {
		return nil
	}
	out := make(Attributes, len(a))
	for k, v := range a {
		if s, ok := v.([]string); ok {
			v = append([]string(nil), s...)
		}
		out[k] = v
	}
	return out
}

// RawSpec is the per-document extraction output before normalization.
// Every field is always populated; a miss is the "Not specified" sentinel.
type RawSpec struct {
	SourceDocument  string          `json:"source_document"`
	Brand           constants.Brand `json:"brand"`
	Model           string          `json:"model"`
	Processor       []string        `json:"processor"`
	Memory          []string        `json:"memory"`
	Storage         []string        `json:"storage"`
	Display         Attributes      `json:"display"`
	Graphics        []string        `json:"graphics"`
	Battery         string          `json:"battery"`
	Weight          string          `json:"weight"`
	Dimensions      string          `json:"dimensions"`
	Ports           []string        `json:"ports"`
	Wireless        Attributes      `json:"wireless"`
	OperatingSystem []string        `json:"operating_system"`
	Security        []string        `json:"security"`
	MultiMedia      Attributes      `json:"multi_media"`
	Monitor         Attributes      `json:"monitor"`
	Chipset         string          `json:"chipset"`
	Colour          []string        `json:"colour"`
	CaseMaterial    string          `json:"case_material"`
	Network         Attributes      `json:"network"`
	Warranty        string          `json:"warranty"`
	Certification   []string        `json:"certification"`
	InputDevice     Attributes      `json:"input_device"`
	Power           Attributes      `json:"power"`
	RawText         string          `json:"raw_text,omitempty"`
}

// SpecDocument is one spec record in its persisted JSON form. The normalizer
// and the schema validator work on this shape so they accept raw, normalized
// and hand-edited records alike.
type SpecDocument = map[string]any

// Top-level keys shared by the normalizer, validator, report and export.
const (
	KeySourceDocument  = "source_document"
	KeyBrand           = "brand"
	KeyModel           = "model"
	KeyProcessor       = "processor"
	KeyMemory          = "memory"
	KeyStorage         = "storage"
	KeyDisplay         = "display"
	KeyGraphics        = "graphics"
	KeyBattery         = "battery"
	KeyWeight          = "weight"
	KeyWeights         = "weights"
	KeyDimensions      = "dimensions"
	KeyPorts           = "ports"
	KeyWireless        = "wireless"
	KeyOperatingSystem = "operating_system"
	KeySecurity        = "security"
	KeyMultiMedia      = "multi_media"
	KeyMonitor         = "monitor"
	KeyChipset         = "chipset"
	KeyColour          = "colour"
	KeyCaseMaterial    = "case_material"
	KeyNetwork         = "network"
	KeyWarranty        = "warranty"
	KeyCertification   = "certification"
	KeyInputDevice     = "input_device"
	KeyPower           = "power"
)

// Missing lists the fields that came out as their "not found" sentinel.
func (s RawSpec) Missing() []string {
	var out []string
	scalar := func(key, v string) {
		if v == constants.NotSpecified || v == constants.UnknownModel || v == "" {
			out = append(out, key)
		}
	}
	list := func(key string, v []string) {
		if len(v) == 0 || (len(v) == 1 && v[0] == constants.NotSpecified) {
			out = append(out, key)
		}
	}
	attrs := func(key string, v Attributes) {
		for _, val := range v {
			switch x := val.(type) {
			case string:
				if x != constants.NotSpecified {
					return
				}
			case []string:
				if len(x) != 1 || x[0] != constants.NotSpecified {
					return
				}
			default:
				return
			}
		}
		out = append(out, key)
	}

	scalar(KeyModel, s.Model)
	list(KeyProcessor, s.Processor)
	list(KeyMemory, s.Memory)
	list(KeyStorage, s.Storage)
	attrs(KeyDisplay, s.Display)
	list(KeyGraphics, s.Graphics)
	scalar(KeyBattery, s.Battery)
	scalar(KeyWeight, s.Weight)
	scalar(KeyDimensions, s.Dimensions)
	list(KeyPorts, s.Ports)
	list(KeyOperatingSystem, s.OperatingSystem)
	list(KeySecurity, s.Security)
	attrs(KeyMultiMedia, s.MultiMedia)
	attrs(KeyMonitor, s.Monitor)
	scalar(KeyChipset, s.Chipset)
	list(KeyColour, s.Colour)
	scalar(KeyCaseMaterial, s.CaseMaterial)
	attrs(KeyNetwork, s.Network)
	scalar(KeyWarranty, s.Warranty)
	list(KeyCertification, s.Certification)
	attrs(KeyInputDevice, s.InputDevice)
	attrs(KeyPower, s.Power)
	return out
}
