package record

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/wisplabs/antenna-poller/internal/extract"
)

var assemblyTime = time.Date(2026, time.May, 4, 12, 31, 5, 0, time.UTC)

func TestMemoryUsagePercent(t *testing.T) {
	tests := []struct {
		name     string
		used     float64
		free     float64
		expected string
		ok       bool
	}{
		{"even split", 50, 50, "50.0 %", true},
		{"one decimal", 29.0, 31.0, "48.3 %", true},
		{"zero total", 0, 0, "", false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			value, ok := MemoryUsagePercent(test.used, test.free)
			if ok != test.ok || value != test.expected {
				t.Errorf("MemoryUsagePercent(%v, %v) = %q, %v; expected %q, %v", test.used, test.free, value, ok, test.expected, test.ok)
			}
		})
	}
}

func TestMegabits(t *testing.T) {
	// One mebibyte of bytes is eight megabits on the wire.
	if value := Megabits(1048576); value != "8.0 Mb" {
		t.Errorf("Megabits(1048576) = %q, expected %q", value, "8.0 Mb")
	}
	if value := Megabits(0); value != "0.0 Mb" {
		t.Errorf("Megabits(0) = %q, expected %q", value, "0.0 Mb")
	}
}

func TestFormatUptime(t *testing.T) {
	tests := []struct {
		seconds  int64
		expected string
		ok       bool
	}{
		{90000, "1 día", true},
		{200000, "2 días", true},
		{7200, "2 horas", true},
		{3600, "1 hora", true},
		{120, "2 minutos", true},
		{45, "0 minutos", true},
		{0, "", false},
	}

	for _, test := range tests {
		value, ok := FormatUptime(test.seconds)
		if ok != test.ok || value != test.expected {
			t.Errorf("FormatUptime(%d) = %q, %v; expected %q, %v", test.seconds, value, ok, test.expected, test.ok)
		}
	}
}

func TestPacketLoss(t *testing.T) {
	rx := int64(7)

	value, ok := PacketLoss(&rx, nil)
	if !ok || value != "7 (Bajada), 0 (Subida)" {
		t.Errorf("PacketLoss(&7, nil) = %q, %v", value, ok)
	}

	if _, ok := PacketLoss(nil, nil); ok {
		t.Error("PacketLoss(nil, nil) should report absent")
	}
}

func TestSanitizeKey(t *testing.T) {
	tests := []struct {
		key      string
		expected string
	}{
		{"wireless.1.mode#ap", "wireless_1_mode_ap"},
		{"a$b#c[d]e/f.g", "a_b_c_d_e_f_g"},
		{"airMAX_Quality", "airMAX_Quality"},
	}

	for _, test := range tests {
		if value := SanitizeKey(test.key); value != test.expected {
			t.Errorf("SanitizeKey(%q) = %q, expected %q", test.key, value, test.expected)
		}
	}
}

func TestAssembleFullObservation(t *testing.T) {
	memUsed, memFree := 29.0, 31.0
	busy := 20
	rxBytes, txBytes := int64(1048576), int64(2097152)
	rxDropped := int64(7)
	uptime := int64(90000)
	date := "Sat May  4 12:31:05 UTC 2026"
	mac := "00:27:22:AA:BB:CC"

	deviceRecord := Assemble("Torre Norte", "192.168.1.20", Observation{
		Top: extract.TopStats{
			MemUsedMB:  &memUsed,
			MemFreeMB:  &memFree,
			CPUBusyPct: &busy,
			CPUDetail:  map[string]int{"Uso_por_Usuario": 4},
		},
		NetDev:        extract.NetDevCounters{RxBytes: &rxBytes, TxBytes: &txBytes},
		Interface:     extract.InterfaceStats{RxDropped: &rxDropped, WirelessMAC: &mac},
		UptimeSeconds: &uptime,
		SystemConfig:  map[string]string{"ssid": "BACKBONE-NORTE", "ccq": "94 %"},
		Airmax:        map[string]string{"airMAX_Quality": "96"},
		RemoteDate:    &date,
	}, assemblyTime)

	if deviceRecord.Name != "Torre Norte" || deviceRecord.IP != "192.168.1.20" {
		t.Errorf("unexpected identity: %q %q", deviceRecord.Name, deviceRecord.IP)
	}

	performance := deviceRecord.Sections[SectionPerformance]
	if performance["Memoria_Usada"] != "29.0 MB" || performance["Memoria_Libre"] != "31.0 MB" || performance["Uso_Memoria"] != "48.3 %" {
		t.Errorf("unexpected performance section: %v", performance)
	}

	if deviceRecord.Sections[SectionCPU]["Uso_Total"] != "20%" {
		t.Errorf("unexpected CPU section: %v", deviceRecord.Sections[SectionCPU])
	}
	if deviceRecord.Sections[SectionCPUDetail]["Uso_por_Usuario"] != "4%" {
		t.Errorf("unexpected CPU detail section: %v", deviceRecord.Sections[SectionCPUDetail])
	}

	traffic := deviceRecord.Sections[SectionTraffic]
	if traffic["Bajada"] != "8.0 Mb" || traffic["Subida"] != "16.0 Mb" {
		t.Errorf("unexpected traffic section: %v", traffic)
	}
	if traffic["Paquetes_Perdidos"] != "7 (Bajada), 0 (Subida)" {
		t.Errorf("unexpected packet loss: %q", traffic["Paquetes_Perdidos"])
	}

	status := deviceRecord.Sections[SectionStatus]
	expectedStatus := map[string]string{
		"AP_Asociado":          "BACKBONE-NORTE",
		"Transmitir_CCQ":       "94 %",
		"Fecha":                date,
		"Tiempo_Encendido":     "1 día",
		"WLAN0_MAC":            mac,
		"Ultima_Actualizacion": "12:31:05 04/05/2026",
	}
	for label, expected := range expectedStatus {
		if status[label] != expected {
			t.Errorf("status[%s] = %q, expected %q", label, status[label], expected)
		}
	}
	if _, ok := status["LAN0_MAC"]; ok {
		t.Error("absent wired MAC should not appear in the status section")
	}

	if deviceRecord.Sections[SectionAirmax]["airMAX_Quality"] != "96" {
		t.Errorf("unexpected airMAX section: %v", deviceRecord.Sections[SectionAirmax])
	}
}

func TestAssembleOmitsEmptySections(t *testing.T) {
	deviceRecord := Assemble("Torre Sur", "192.168.1.21", Observation{
		Airmax: map[string]string{"airMAX_Quality": "96"},
	}, assemblyTime)

	if len(deviceRecord.Sections) != 1 {
		t.Errorf("expected only the airMAX section, got %v", deviceRecord.Sections)
	}
	if _, ok := deviceRecord.Sections[SectionAirmax]; !ok {
		t.Errorf("missing airMAX section: %v", deviceRecord.Sections)
	}
}

func TestAssembleZeroMemoryOmitsUsage(t *testing.T) {
	zero := 0.0
	deviceRecord := Assemble("Torre Sur", "192.168.1.21", Observation{
		Top: extract.TopStats{MemUsedMB: &zero, MemFreeMB: &zero},
	}, assemblyTime)

	performance := deviceRecord.Sections[SectionPerformance]
	if performance == nil {
		t.Fatal("performance section should exist when both memory values are present")
	}
	if _, ok := performance["Uso_Memoria"]; ok {
		t.Error("zero total memory should omit the usage field, not divide by zero")
	}
}

func TestAssembleEmptyObservation(t *testing.T) {
	deviceRecord := Assemble("Torre Sur", "192.168.1.21", Observation{}, assemblyTime)

	if len(deviceRecord.Sections) != 0 {
		t.Errorf("empty observation should yield no sections, got %v", deviceRecord.Sections)
	}
}

func TestAssembleSanitizesKeys(t *testing.T) {
	deviceRecord := Assemble("Torre Sur", "192.168.1.21", Observation{
		Airmax: map[string]string{"wireless.1.mode#ap": "sta"},
	}, assemblyTime)

	airmax := deviceRecord.Sections[SectionAirmax]
	if _, ok := airmax["wireless_1_mode_ap"]; !ok {
		t.Errorf("airMAX keys should be sanitized for store paths, got %v", airmax)
	}
}

func TestDeviceRecordJSONShape(t *testing.T) {
	deviceRecord := Assemble("Torre Sur", "192.168.1.21", Observation{
		Airmax: map[string]string{"airMAX_Quality": "96"},
	}, assemblyTime)

	encoded, err := json.Marshal(deviceRecord)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var flat map[string]any
	if err := json.Unmarshal(encoded, &flat); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if flat["nombre"] != "Torre Sur" || flat["ip"] != "192.168.1.21" {
		t.Errorf("unexpected identity fields: %v", flat)
	}
	if _, ok := flat[SectionAirmax]; !ok {
		t.Errorf("sections should be flattened next to the identity fields: %v", flat)
	}
	if _, ok := flat["Sections"]; ok {
		t.Errorf("raw struct field leaked into JSON: %v", flat)
	}
}
