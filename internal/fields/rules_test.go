package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/joseph-ayodele/laptop-specs/constants"
	"github.com/joseph-ayodele/laptop-specs/internal/entity"
)

func TestStandard_SentinelsOnEmptyText(t *testing.T) {
	reg := Standard()

	assert.Equal(t, constants.UnknownModel, reg.Scalar(Model, ""))
	for _, name := range []string{Battery, Weight, Dimensions, Chipset, CaseMaterial, Warranty} {
		assert.Equal(t, constants.NotSpecified, reg.Scalar(name, ""), name)
	}
	for _, name := range []string{Processor, Memory, Storage, Graphics, Ports, OperatingSystem, Security, Colour, Certification} {
		assert.Equal(t, []string{constants.NotSpecified}, reg.List(name, ""), name)
	}

	defaults := map[string]entity.Attributes{
		Display:     {"size": "Not specified", "resolution": "Not specified"},
		MultiMedia:  {"camera": "Not specified", "audio": []string{"Not specified"}},
		Monitor:     {"max_displays": "Not specified"},
		Network:     {"ethernet": "Not specified"},
		InputDevice: {"keyboard": []string{"Not specified"}, "touchpad": "Not specified"},
		Power:       {"adapter_wattage": "Not specified"},
	}
	for name, want := range defaults {
		assert.Equal(t, want, reg.Attrs(name, ""), name)
	}

	assert.Equal(t, entity.Attributes{
		"wifi_6": false, "wifi_6e": false, "wifi_5": false, "bluetooth": false,
	}, reg.Attrs(Wireless, ""))
}

func TestStandard_DefaultsAreNotShared(t *testing.T) {
	reg := Standard()
	first := reg.Attrs(MultiMedia, "")
	first["audio"].([]string)[0] = "mutated"
	first["camera"] = "mutated"

	second := reg.Attrs(MultiMedia, "")
	assert.Equal(t, []string{"Not specified"}, second["audio"])
	assert.Equal(t, "Not specified", second["camera"])
}

func TestMemory_BothCapacitiesDeduplicated(t *testing.T) {
	text := "Memory options\n16GB DDR5 soldered memory\n8GB DDR5 soldered memory\n16GB DDR5"
	got := Standard().List(Memory, text)

	assert.ElementsMatch(t, []string{"16GB DDR5", "8GB DDR5"}, got)
	assert.NotContains(t, got, constants.NotSpecified)
}

func TestCollections_AreDeduplicated(t *testing.T) {
	text := `Ports: USB-C USB-C HDMI 2.1 HDMI 2.1 RJ45 Ethernet
Processor: Intel Core i5-1335U
Intel Core i5-1335U, Intel Core i7-1355U
Colour: Thunder Black
Thunder Black Black`

	reg := Standard()
	for _, name := range []string{Ports, Processor, Colour} {
		got := reg.List(name, text)
		seen := map[string]bool{}
		for _, v := range got {
			assert.False(t, seen[v], "%s: duplicate %q", name, v)
			seen[v] = true
		}
	}

	assert.ElementsMatch(t,
		[]string{"Intel Core i5-1335U", "Intel Core i7-1355U", "Core i5-1335U", "Core i7-1355U"},
		reg.List(Processor, text))
}

func TestFirstMatch_UsesRuleOrderNotTextPosition(t *testing.T) {
	tests := []struct {
		name  string
		field string
		text  string
		want  string
	}{
		{
			name:  "numeric warranty beats earlier label",
			field: Warranty,
			text:  "Warranty: 1 year depot\nBase offering: 3-year limited warranty",
			want:  "3-year limited warranty",
		},
		{
			name:  "watt-hours beat earlier battery label",
			field: Battery,
			text:  "Battery: 3-cell Li-ion\nCapacity 45Wh",
			want:  "45Wh",
		},
		{
			name:  "metal beats earlier material label",
			field: CaseMaterial,
			text:  "Chassis Material: polycarbonate\nMetal hinges",
			want:  "Metal",
		},
		{
			name:  "label match keeps the whole match",
			field: Model,
			text:  "Model: X13 Yoga\nother text",
			want:  "Model: X13 Yoga",
		},
		{
			name:  "thinkpad model",
			field: Model,
			text:  "Lenovo ThinkPad E14 Gen 5 (Intel) platform",
			want:  "ThinkPad E14 Gen 5 (Intel)",
		},
		{
			name:  "probook model",
			field: Model,
			text:  "HP ProBook 450 G10 Notebook PC",
			want:  "ProBook 450 G10",
		},
		{
			name:  "weight",
			field: Weight,
			text:  "Starting at 1.36 kg (3.0 lbs)",
			want:  "1.36 kg",
		},
		{
			name:  "dimensions in mm",
			field: Dimensions,
			text:  "Dimensions: 313 x 219.3 x 17.99 mm",
			want:  "313 x 219.3 x 17.99 mm",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Standard().Scalar(tt.field, tt.text))
		})
	}
}

func TestDisplay(t *testing.T) {
	t.Run("numeric resolution", func(t *testing.T) {
		got := Standard().Attrs(Display, "14 inch WUXGA (1920 x 1200) IPS, 300 nits, anti-glare, touch")
		assert.Equal(t, entity.Attributes{
			"size":       "14 inches",
			"resolution": "1920x1200",
			"brightness": "300 nits",
			"touch":      "Yes",
			"anti_glare": "Yes",
		}, got)
	})

	t.Run("named resolution fallback", func(t *testing.T) {
		got := Standard().Attrs(Display, "15.6 inch FHD panel")
		assert.Equal(t, entity.Attributes{"size": "15.6 inches", "resolution": "FHD"}, got)
	})
}

func TestWireless(t *testing.T) {
	got := Standard().Attrs(Wireless, "Intel Wi-Fi 6E AX211, Bluetooth 5.3")
	assert.Equal(t, entity.Attributes{
		"wifi_6":            false,
		"wifi_6e":           true,
		"wifi_5":            false,
		"bluetooth":         true,
		"bluetooth_version": "5.3",
	}, got)

	got = Standard().Attrs(Wireless, "Realtek Wi-Fi 6, 802.11ax")
	assert.Equal(t, true, got["wifi_6"])
	assert.Equal(t, false, got["wifi_6e"])
	assert.Equal(t, false, got["bluetooth"])
	assert.NotContains(t, got, "bluetooth_version")
}

func TestPower_DeliveryAcceptStopsSearch(t *testing.T) {
	got := Standard().Attrs(Power, "65W AC Adapter\nPD 3.0\nUSB-C port with Power Delivery")
	assert.Equal(t, entity.Attributes{"adapter_wattage": "65W"}, got)

	got = Standard().Attrs(Power, "USB Power Delivery 3.0\nRapid Charge\nTDP: 28W")
	assert.Equal(t, "Power Delivery 3.0", got["power_delivery"])
	assert.Equal(t, "Rapid Charge", got["rapid_charge"])
	assert.Equal(t, "28W", got["power_consumption"])
	assert.NotContains(t, got, "adapter_wattage")
}

func TestMonitor(t *testing.T) {
	text := "Supports up to 3 independent displays\nHDMI 2.1 supports 3840x2160@60Hz"
	got := Standard().Attrs(Monitor, text)

	assert.Equal(t, "3", got["max_displays"])
	assert.Equal(t, []string{"3840 2160 60"}, got["supported_resolutions"])
	assert.Equal(t, "3840x2160@60Hz", got["hdmi_support"])
	assert.NotContains(t, got, "usbc_support")
}

func TestMultiMedia(t *testing.T) {
	got := Standard().Attrs(MultiMedia, "5MP IR Camera with Privacy Shutter, Dolby Audio, 2W Speakers")

	assert.Equal(t, "5MP IR Camera", got["camera"])
	assert.Equal(t, "Yes", got["camera_privacy"])
	assert.ElementsMatch(t, []string{"Dolby Audio", "2W"}, got["audio"])
}

func TestCertification_ShortMarksNeedWordBoundaries(t *testing.T) {
	got := Standard().List(Certification, "Performance and compliance: ENERGY STAR, CE marked")
	assert.ElementsMatch(t, []string{"ENERGY STAR", "CE"}, got)
}

func TestFirstMatch_OnlyModelIsTrimmed(t *testing.T) {
	text := "Model: ThinkPad T14s   \nChipset: Intel Q670   \nCamera: 1080p FHD   \n"

	assert.Equal(t, "Model: ThinkPad T14s", Standard().Scalar(Model, text))
	assert.Equal(t, "Chipset: Intel Q670   ", Standard().Scalar(Chipset, text))
	assert.Equal(t, "Camera: 1080p FHD   ", Standard().Attrs(MultiMedia, text)["camera"])
}
