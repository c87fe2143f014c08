package fields

import (
	"strings"

	"github.com/joseph-ayodele/laptop-specs/constants"
	"github.com/joseph-ayodele/laptop-specs/internal/entity"
)

// Field identifiers, identical to the record's JSON keys.
const (
	Model           = entity.KeyModel
	Processor       = entity.KeyProcessor
	Memory          = entity.KeyMemory
	Storage         = entity.KeyStorage
	Display         = entity.KeyDisplay
	Graphics        = entity.KeyGraphics
	Battery         = entity.KeyBattery
	Weight          = entity.KeyWeight
	Dimensions      = entity.KeyDimensions
	Ports           = entity.KeyPorts
	Wireless        = entity.KeyWireless
	OperatingSystem = entity.KeyOperatingSystem
	Security        = entity.KeySecurity
	MultiMedia      = entity.KeyMultiMedia
	Monitor         = entity.KeyMonitor
	Chipset         = entity.KeyChipset
	Colour          = entity.KeyColour
	CaseMaterial    = entity.KeyCaseMaterial
	Network         = entity.KeyNetwork
	Warranty        = entity.KeyWarranty
	Certification   = entity.KeyCertification
	InputDevice     = entity.KeyInputDevice
	Power           = entity.KeyPower
)

// StandardRules returns the rule table for Lenovo PSREF and HP datasheet text.
// Pattern order is significant for first-match fields and sub-rules.
func StandardRules() []Rule {
	return []Rule{
		{
			Name:   Model,
			Policy: FirstMatch,
			Patterns: []Pattern{
				P(`ThinkPad\s+E14\s+Gen\s+\d+\s*\([^)]+\)`),
				P(`ProBook\s+\d+\s+G\d+`),
				P(`ProBook\s+\d+\s+\d+\.?\d*\s+inch\s+G\d+`),
				P(`Model:\s*([^\n]+)`),
			},
			Sentinel: constants.UnknownModel,
			Trim:     true,
		},
		{
			Name:   Processor,
			Policy: Collection,
			Patterns: []Pattern{
				P(`Intel[®]?\s+Core[™]?\s+i[3579]-\d+[A-Z]*`),
				P(`AMD\s+Ryzen[™]?\s+[3579]\s+\d+[A-Z]*`),
				P(`Core\s+i[3579]-\d+[A-Z]+`),
				P(`Processors?:\s*([^\n]+)`),
			},
		},
		{
			Name:   Memory,
			Policy: Collection,
			Patterns: []Pattern{
				P(`\d+GB\s+(?:soldered\s*\+\s*\d+GB\s+)?DDR[45](?:-\d+)?`),
				P(`Up to\s+\d+GB.*?DDR[45]`),
				P(`Memory:\s*([^\n]+)`),
				P(`RAM:\s*([^\n]+)`),
				P(`\d+GB\s+DDR[45]`),
			},
		},
		{
			Name:   Storage,
			Policy: Collection,
			Patterns: []Pattern{
				P(`\d+GB\s+(?:PCIe|NVMe|M\.2)?\s*SSD`),
				P(`\d+TB\s+(?:PCIe|NVMe|M\.2)?\s*SSD`),
				P(`\d+GB\s+HDD`),
				P(`\d+TB\s+HDD`),
				P(`Storage:\s*([^\n]+)`),
				P(`M\.2\s+\d+\s+SSD`),
				P(`2\.5["']?\s+(?:SATA\s+)?(?:HDD|SSD)`),
			},
		},
		{
			Name:   Display,
			Policy: Structured,
			Subs: []Sub{
				{Key: "size", Kind: SubFirst, Patterns: []Pattern{
					T(`(\d+\.?\d*)\s*["']?\s*(?:inch|display)`, "${1} inches"),
				}},
				{Key: "resolution", Kind: SubFirst, Patterns: []Pattern{
					T(`(\d{3,4})\s*[x×]\s*(\d{3,4})`, "${1}x${2}"),
					P(`FHD|WUXGA|WQXGA|2\.2K|4K|UHD`),
				}},
				{Key: "brightness", Kind: SubFirst, Patterns: []Pattern{
					T(`(\d+)\s*nits?`, "${1} nits"),
				}},
				{Key: "touch", Kind: SubFlag, Value: "Yes", Patterns: []Pattern{P(`touch`)}},
				{Key: "anti_glare", Kind: SubFlag, Value: "Yes", Patterns: []Pattern{P(`anti-glare`)}},
			},
			Default: entity.Attributes{"size": constants.NotSpecified, "resolution": constants.NotSpecified},
		},
		{
			Name:   Graphics,
			Policy: Collection,
			Patterns: []Pattern{
				P(`Intel[®]?\s+(?:Iris[®]?\s+)?(?:Xe\s+)?(?:UHD\s+)?Graphics`),
				P(`NVIDIA[®]?\s+GeForce\s+[^\n,]+`),
				P(`AMD\s+Radeon[™]?\s+[^\n,]+`),
				P(`Graphics:\s*([^\n]+)`),
				P(`Integrated\s+Graphics`),
			},
		},
		{
			Name:   Battery,
			Policy: FirstMatch,
			Patterns: []Pattern{
				P(`(\d+)\s*Wh`),
				P(`Battery:\s*([^\n]+)`),
				P(`(\d+)-cell`),
			},
		},
		{
			Name:     Weight,
			Policy:   FirstMatch,
			Patterns: []Pattern{P(`(\d+\.?\d*)\s*(?:kg|lbs?|pounds?)`)},
		},
		{
			Name:   Dimensions,
			Policy: FirstMatch,
			Patterns: []Pattern{
				P(`(\d+\.?\d*)\s*x\s*(\d+\.?\d*)\s*x\s*(\d+\.?\d*)\s*mm`),
				P(`(\d+\.?\d*)\s*x\s*(\d+\.?\d*)\s*x\s*(\d+\.?\d*)\s*inches?`),
				P(`Dimensions:\s*([^\n]+)`),
			},
		},
		{
			Name:   Ports,
			Policy: Collection,
			Patterns: []Pattern{
				P(`USB[- ]?C[®]?(?:\s+\d\.\d)?(?:\s+Gen\s+\d)?`),
				P(`USB[- ]?\d\.\d(?:\s+Gen\s+\d)?`),
				P(`USB\s+3\.2\s+Gen\s+\d`),
				P(`HDMI[®]?(?:\s+\d\.?\d?[a-z]?)?`),
				P(`Thunderbolt[™]?\s+\d`),
				P(`Ethernet`),
				P(`RJ-?45`),
				P(`Audio\s+Jack`),
				P(`Headphone/Microphone`),
				P(`SD\s+Card`),
				P(`DisplayPort[™]?`),
			},
		},
		{
			Name:   Wireless,
			Policy: Structured,
			Subs: []Sub{
				// 6 not followed by E; RE2 has no lookahead.
				{Key: "wifi_6", Kind: SubBool, Patterns: []Pattern{P(`Wi-Fi[®]?\s+6(?:[^E]|$)`)}},
				{Key: "wifi_6e", Kind: SubBool, Patterns: []Pattern{P(`Wi-Fi[®]?\s+6E`)}},
				{Key: "wifi_5", Kind: SubBool, Patterns: []Pattern{P(`Wi-Fi[®]?\s+5|802\.11ac`)}},
				{Key: "bluetooth", Kind: SubBool, Patterns: []Pattern{P(`Bluetooth`)}},
				{Key: "bluetooth_version", Kind: SubFirst, Patterns: []Pattern{
					T(`Bluetooth[®]?\s+(\d+\.?\d*)`, "${1}"),
				}},
			},
		},
		{
			Name:   OperatingSystem,
			Policy: Collection,
			Patterns: []Pattern{
				P(`Windows\s+11\s+(?:Pro|Home|Enterprise)?`),
				P(`Windows\s+10\s+(?:Pro|Home|Enterprise)?`),
				P(`Linux`),
				P(`Ubuntu`),
				P(`FreeDOS`),
				P(`No\s+OS`),
			},
		},
		{
			Name:   Security,
			Policy: Collection,
			Patterns: []Pattern{
				P(`TPM\s+\d+\.?\d*`),
				P(`dTPM\s+\d+\.?\d*`),
				P(`Fingerprint\s+(?:Reader|Sensor)`),
				P(`IR\s+Camera`),
				P(`Privacy\s+Shutter`),
				P(`Kensington\s+Lock`),
				P(`Smart\s+Card\s+Reader`),
				P(`BIOS\s+Password`),
				P(`Trusted\s+Platform\s+Module`),
			},
		},
		{
			Name:   MultiMedia,
			Policy: Structured,
			Subs: []Sub{
				{Key: "camera", Kind: SubFirst, Patterns: []Pattern{
					P(`(\d+)MP\s+(?:HD\s+)?Camera`),
					P(`(\d+\.?\d*)MP\s+(?:IR\s+)?(?:HD\s+)?(?:RGB\s+)?Camera`),
					P(`HD\s+Camera`),
					P(`FHD\s+Camera`),
					P(`IR\s+Camera`),
					P(`Camera:\s*([^\n]+)`),
				}},
				{Key: "camera_privacy", Kind: SubFlag, Value: "Yes", Patterns: []Pattern{
					P(`Privacy\s+Shutter|ThinkShutter|Camera\s+Privacy`),
				}},
				{Key: "audio", Kind: SubAll, Patterns: []Pattern{
					P(`Dual\s+Array\s+Microphone`),
					P(`Stereo\s+Speakers`),
					P(`Dolby\s+(?:Audio|Atmos)`),
					P(`Audio\s+by\s+\w+`),
					P(`(\d+W)\s+Speakers`),
					P(`Bang\s+&\s+Olufsen`),
					P(`DTS\s+Audio`),
				}},
			},
			Default: entity.Attributes{"camera": constants.NotSpecified, "audio": constants.NotSpecifiedList()},
		},
		{
			Name:   Monitor,
			Policy: Structured,
			Subs: []Sub{
				{Key: "max_displays", Kind: SubFirst, Patterns: []Pattern{
					T(`(?:Supports\s+)?up\s+to\s+(\d+)\s+(?:independent\s+)?displays?`, "${1}"),
				}},
				{Key: "supported_resolutions", Kind: SubAll, Patterns: []Pattern{
					P(`(\d{4})x(\d{4})@(\d+)Hz`),
					P(`(\d{4})x(\d{3,4})@(\d+)Hz`),
					P(`4K\s+@\s*(\d+)Hz`),
					P(`5K\s+@\s*(\d+)Hz`),
				}},
				{Key: "hdmi_support", Kind: SubFirst, Patterns: []Pattern{
					T(`HDMI.*?supports.*?(\d{4}x\d{3,4}@\d+Hz)`, "${1}"),
				}},
				{Key: "usbc_support", Kind: SubFirst, Patterns: []Pattern{
					T(`USB-C.*?supports.*?(\d{4}x\d{3,4}@\d+Hz)`, "${1}"),
				}},
				{Key: "thunderbolt_support", Kind: SubFirst, Patterns: []Pattern{
					T(`Thunderbolt.*?supports.*?(\d{4}x\d{3,4}@\d+Hz)`, "${1}"),
				}},
			},
			Default: entity.Attributes{"max_displays": constants.NotSpecified},
		},
		{
			Name:   Chipset,
			Policy: FirstMatch,
			Patterns: []Pattern{
				P(`Intel[®]?\s+SoC\s+\(System\s+on\s+Chip\)`),
				P(`Intel[®]?\s+Chipset`),
				P(`AMD\s+Chipset`),
				P(`Chipset:\s*([^\n]+)`),
				P(`Platform\s+Controller\s+Hub`),
			},
		},
		{
			Name:   Colour,
			Policy: Collection,
			Patterns: []Pattern{
				P(`Thunder\s+Black`),
				P(`Arctic\s+Grey`),
				P(`Natural\s+Silver`),
				P(`Pike\s+Silver`),
				P(`Storm\s+Grey`),
				P(`Colors?:\s*([^\n]+)`),
				P(`Colour:\s*([^\n]+)`),
				P(`\b(?:Black|Silver|Grey|Gray|White|Blue|Red|Gold)\b`),
			},
		},
		{
			Name:   CaseMaterial,
			Policy: FirstMatch,
			Patterns: []Pattern{
				P(`Aluminum(?:\s+Chassis)?`),
				P(`Aluminium(?:\s+Chassis)?`),
				P(`Magnesium\s+Alloy`),
				P(`Plastic`),
				P(`Carbon\s+Fiber`),
				P(`Metal`),
				P(`Material:\s*([^\n]+)`),
				P(`(?:Case|Chassis|Body)\s+Material:\s*([^\n]+)`),
			},
		},
		{
			Name:   Network,
			Policy: Structured,
			Subs: []Sub{
				{Key: "ethernet", Kind: SubFirst, Patterns: []Pattern{
					P(`Gigabit\s+Ethernet`),
					P(`10/100/1000\s+Mbps`),
					P(`RJ-?45`),
					P(`Ethernet:\s*([^\n]+)`),
				}},
				{Key: "wwan", Kind: SubAll, Patterns: []Pattern{
					P(`WWAN`),
					P(`LTE`),
					P(`5G`),
					P(`4G`),
					P(`Mobile\s+Broadband`),
					P(`CAT\d+\s+(?:LTE|4G|5G)`),
				}},
				{Key: "nfc", Kind: SubFlag, Value: "Yes", Patterns: []Pattern{P(`NFC`)}},
			},
			Default: entity.Attributes{"ethernet": constants.NotSpecified},
		},
		{
			Name:   Warranty,
			Policy: FirstMatch,
			Patterns: []Pattern{
				P(`(\d+)[-\s]year\s+(?:limited\s+)?warranty`),
				P(`(\d+)[-\s]month\s+(?:limited\s+)?warranty`),
				P(`Warranty:\s*([^\n]+)`),
				P(`Limited\s+warranty`),
				P(`(\d+)yr\s+warranty`),
			},
		},
		{
			Name:   Certification,
			Policy: Collection,
			Patterns: []Pattern{
				P(`ENERGY\s+STAR[®]?`),
				P(`EPEAT[™]?\s+(?:Gold|Silver|Bronze)?`),
				P(`TCO\s+Certified`),
				P(`MIL-STD-810[HG]`),
				P(`MIL-SPEC`),
				P(`ISO\s+\d+`),
				P(`RoHS`),
				P(`\bCE\b`),
				P(`FCC`),
				P(`\bUL\b`),
				P(`TÜV`),
				P(`ErP\s+Lot\s+\d+`),
			},
		},
		{
			Name:   InputDevice,
			Policy: Structured,
			Subs: []Sub{
				{Key: "keyboard", Kind: SubAll, Patterns: []Pattern{
					P(`Backlit\s+Keyboard`),
					P(`Spill-resistant\s+Keyboard`),
					P(`Full-size\s+Keyboard`),
					P(`(\d+)-key\s+Keyboard`),
					P(`Numeric\s+Keypad`),
					P(`TrackPoint`),
					P(`Keyboard:\s*([^\n]+)`),
				}},
				{Key: "touchpad", Kind: SubFirst, Patterns: []Pattern{
					P(`Precision\s+Touchpad`),
					P(`Multi-touch\s+(?:Gesture\s+)?Touchpad`),
					P(`Touchpad:\s*([^\n]+)`),
					P(`(\d+\.?\d*)["']?\s+Touchpad`),
					P(`Clickpad`),
				}},
				{Key: "pointing_device", Kind: SubFlag, Value: "TrackPoint", Patterns: []Pattern{P(`TrackPoint`)}},
			},
			Default: entity.Attributes{"keyboard": constants.NotSpecifiedList(), "touchpad": constants.NotSpecified},
		},
		{
			Name:   Power,
			Policy: Structured,
			Subs: []Sub{
				{Key: "adapter_wattage", Kind: SubFirst, Patterns: []Pattern{
					T(`(\d+)W\s+(?:AC\s+)?(?:Power\s+)?Adapter`, "${1}W"),
					T(`AC\s+Adapter:\s*(\d+)W`, "${1}W"),
					T(`Power\s+Supply:\s*(\d+)W`, "${1}W"),
				}},
				{
					Key:  "power_delivery",
					Kind: SubFirst,
					Patterns: []Pattern{
						P(`Power\s+Delivery\s+(\d+\.?\d*)`),
						P(`PD\s+(\d+\.?\d*)`),
						P(`USB-C.*?Power\s+Delivery`),
					},
					// A bare "PD 3.0" match ends the search without a value.
					Accept: func(m string) bool { return strings.Contains(m, "Power Delivery") },
				},
				{Key: "rapid_charge", Kind: SubFirst, Patterns: []Pattern{
					P(`(?:Rapid|Fast|Quick)\s+Charge(?:\s+\d+%\s+in\s+\d+\s+(?:min|minutes)?)?`),
				}},
				{Key: "power_consumption", Kind: SubFirst, Patterns: []Pattern{
					T(`(?:TDP|Power\s+Consumption):\s*(\d+)W`, "${1}W"),
				}},
			},
			Default: entity.Attributes{"adapter_wattage": constants.NotSpecified},
		},
	}
}
