package feed

import "fmt"

// Bluetooth SIG company IDs seen often enough to be worth naming.
// See: https://www.bluetooth.com/specifications/assigned-numbers/
var companyNames = map[uint16]string{
	0x0002: "Intel",
	0x0006: "Microsoft",
	0x000A: "Qualcomm",
	0x000D: "Texas Inst.",
	0x000F: "Broadcom",
	0x004C: "Apple",
	0x0059: "Nordic",
	0x0075: "Samsung",
	0x0087: "Bose",
	0x00E0: "Google",
	0x012D: "Sony",
	0x0131: "JBL",
	0x0157: "Huawei",
	0x015D: "Espressif",
	0x0171: "Amazon",
	0x0246: "Logitech",
	0x02FF: "Tile",
	0x0310: "Xiaomi",
	0x038F: "Garmin",
	0x03DA: "Fitbit",
	0x0499: "Ruuvi",
	0x0822: "Tuya/Govee",
	0x0958: "IKEA",
	0x0988: "Sonos",
}

// Manufacturer returns the company name for a Bluetooth SIG company ID.
func Manufacturer(companyID uint16) (string, bool) {
	name, ok := companyNames[companyID]
	return name, ok
}

// ContactName picks a label for an advertiser: its local name, or the
// manufacturer plus the last two address octets, or nothing.
func ContactName(localName string, companyIDs []uint16, addr string) string {
	if localName != "" {
		return localName
	}
	for _, id := range companyIDs {
		if mfr, ok := Manufacturer(id); ok {
			if len(addr) >= 5 {
				return fmt.Sprintf("%s %s", mfr, addr[len(addr)-5:])
			}
			return mfr
		}
	}
	return ""
}
