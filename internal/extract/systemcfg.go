package extract

import (
	"bufio"
	"strings"
)

var (
	wirelessModeReplacer = strings.NewReplacer("managed", "Estación", "sta-wds", "Estación WDS")
	securityReplacer     = strings.NewReplacer("WPA-PSK", "WPA2-AES", "none", "Sin seguridad")
)

// SystemConfig scans a flat system.cfg dump for the configuration keys the
// dashboard cares about and maps each one to its display value. Unrecognized
// keys are ignored. Matching is ordered: the signal key is skipped when the
// line belongs to the LED thresholds.
func SystemConfig(data string) map[string]string {
	parsed := map[string]string{}

	scanner := bufio.NewScanner(strings.NewReader(data))
	for scanner.Scan() {
		line := scanner.Text()

		value, ok := configValue(line)
		if !ok {
			continue
		}

		switch {
		case strings.Contains(line, "resolv.host.1.name"):
			parsed["device_name"] = value
		case strings.Contains(line, "netconf.1.netmask") && strings.Contains(line, "255.255.255.0"):
			parsed["netmask_mode"] = "Enrutador"
		case strings.Contains(line, "wireless.1.mode"):
			parsed["wireless_mode"] = wirelessModeReplacer.Replace(value)
		case strings.Contains(line, "wireless.1.ssid"):
			parsed["ssid"] = value
		case strings.Contains(line, "wireless.1.security.type"):
			parsed["security"] = securityReplacer.Replace(value)
		case strings.Contains(line, "radio.1.channel"):
			parsed["channel_freq"] = value + " MHz"
		case strings.Contains(line, "radio.1.chanbw"):
			parsed["bandwidth"] = value + " MHz"
		case strings.Contains(line, "radio.1.txpower"):
			parsed["tx_power"] = value + " dBm"
		case strings.Contains(line, "radio.1.antenna.gain"):
			parsed["antenna"] = value + "x14 - 23 dBi"
		case strings.Contains(line, "ap.mac"):
			parsed["ap_mac"] = value
		case strings.Contains(line, "signal") && !strings.Contains(line, "signal_led"):
			parsed["signal_strength"] = value + " dBm"
		case strings.Contains(line, "noise"):
			parsed["noise_threshold"] = value + " dBm"
		case strings.Contains(line, "wireless.1.ccq"):
			parsed["ccq"] = value + " %"
		}
	}

	return parsed
}

func configValue(line string) (string, bool) {
	parts := strings.SplitN(line, "=", 2)
	if len(parts) != 2 {
		return "", false
	}

	return strings.TrimSpace(parts[1]), true
}
