package record

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/wisplabs/antenna-poller/internal/extract"
)

// Section names as they appear on the dashboard.
const (
	SectionPerformance = "Rendimiento"
	SectionCPUDetail   = "Uso_de_CPU_Detallado"
	SectionCPU         = "Uso_de_CPU"
	SectionTraffic     = "Trafico_de_Datos"
	SectionStatus      = "Estado_General"
	SectionAirmax      = "AirMAX"
)

const lastUpdatedLayout = "15:04:05 02/01/2006"

// Section maps display labels to display-ready values.
type Section map[string]string

// DeviceRecord is the assembled per-device result of one polling round. It is
// built once and never merged with a previous round's record.
type DeviceRecord struct {
	Name     string
	IP       string
	Sections map[string]Section
}

// MarshalJSON flattens the sections next to the identity fields, which is the
// shape the dashboard reads.
func (r DeviceRecord) MarshalJSON() ([]byte, error) {
	flat := make(map[string]any, len(r.Sections)+2)
	flat["nombre"] = r.Name
	flat["ip"] = r.IP
	for name, section := range r.Sections {
		flat[name] = section
	}

	return json.Marshal(flat)
}

// FleetSnapshot is one round's consolidated view of the fleet. It replaces
// the previous snapshot wholesale; there is no history.
type FleetSnapshot struct {
	Timestamp string         `json:"timestamp"`
	Antennas  []DeviceRecord `json:"antennas"`
}

// Observation bundles the extractor output for one device and one round.
type Observation struct {
	Top           extract.TopStats
	NetDev        extract.NetDevCounters
	Interface     extract.InterfaceStats
	UptimeSeconds *int64
	SystemConfig  map[string]string
	Airmax        map[string]string
	RemoteDate    *string
}

// Assemble composes the sectioned record for one device. Sections whose
// inputs are entirely absent are omitted, never emitted empty. All keys are
// sanitized for store paths right before the record leaves this function.
func Assemble(name, ip string, obs Observation, now time.Time) DeviceRecord {
	sections := map[string]Section{}

	if obs.Top.MemUsedMB != nil && obs.Top.MemFreeMB != nil {
		performance := Section{
			"Memoria_Usada": fmt.Sprintf("%.1f MB", *obs.Top.MemUsedMB),
			"Memoria_Libre": fmt.Sprintf("%.1f MB", *obs.Top.MemFreeMB),
		}
		if usage, ok := MemoryUsagePercent(*obs.Top.MemUsedMB, *obs.Top.MemFreeMB); ok {
			performance["Uso_Memoria"] = usage
		}
		sections[SectionPerformance] = performance
	}

	if len(obs.Top.CPUDetail) > 0 {
		detail := make(Section, len(obs.Top.CPUDetail))
		for label, value := range obs.Top.CPUDetail {
			detail[label] = fmt.Sprintf("%d%%", value)
		}
		sections[SectionCPUDetail] = detail
	}

	if obs.Top.CPUBusyPct != nil {
		sections[SectionCPU] = Section{"Uso_Total": fmt.Sprintf("%d%%", *obs.Top.CPUBusyPct)}
	}

	if obs.NetDev.RxBytes != nil && obs.NetDev.TxBytes != nil {
		traffic := Section{
			"Bajada": Megabits(*obs.NetDev.RxBytes),
			"Subida": Megabits(*obs.NetDev.TxBytes),
		}
		if loss, ok := PacketLoss(obs.Interface.RxDropped, obs.Interface.TxDropped); ok {
			traffic["Paquetes_Perdidos"] = loss
		}
		sections[SectionTraffic] = traffic
	}

	if status, ok := assembleStatus(obs, now); ok {
		sections[SectionStatus] = status
	}

	if len(obs.Airmax) > 0 {
		airmax := make(Section, len(obs.Airmax))
		for key, value := range obs.Airmax {
			airmax[key] = value
		}
		sections[SectionAirmax] = airmax
	}

	return DeviceRecord{Name: name, IP: ip, Sections: sanitizeSections(sections)}
}

// assembleStatus builds the general status section. The inclusion gate is any
// of the link and identity candidates being present; the hardware addresses
// ride along but do not open the section on their own.
func assembleStatus(obs Observation, now time.Time) (Section, bool) {
	uptime := ""
	if obs.UptimeSeconds != nil {
		uptime, _ = FormatUptime(*obs.UptimeSeconds)
	}
	date := ""
	if obs.RemoteDate != nil {
		date = *obs.RemoteDate
	}

	cfg := obs.SystemConfig
	candidates := []string{
		cfg["ssid"], cfg["device_name"], cfg["netmask_mode"], cfg["wireless_mode"],
		cfg["security"], date, uptime, cfg["channel_freq"], cfg["bandwidth"],
		cfg["tx_power"], cfg["antenna"], cfg["ap_mac"], cfg["signal_strength"],
		cfg["noise_threshold"], cfg["ccq"],
	}

	present := false
	for _, candidate := range candidates {
		if candidate != "" {
			present = true
			break
		}
	}
	if !present {
		return nil, false
	}

	status := Section{}
	setIfPresent(status, "AP_Asociado", cfg["ssid"])
	setIfPresent(status, "Nombre_Dispositivo", cfg["device_name"])
	setIfPresent(status, "Modo_Mascara_Red", cfg["netmask_mode"])
	setIfPresent(status, "Modo_Inalambrico", cfg["wireless_mode"])
	setIfPresent(status, "Seguridad", cfg["security"])
	setIfPresent(status, "Fecha", date)
	setIfPresent(status, "Tiempo_Encendido", uptime)
	setIfPresent(status, "Canal_Frecuencia", cfg["channel_freq"])
	setIfPresent(status, "Ancho_de_Canal", cfg["bandwidth"])
	setIfPresent(status, "Potencia_TX", cfg["tx_power"])
	setIfPresent(status, "Antena", cfg["antenna"])
	if obs.Interface.WirelessMAC != nil {
		status["WLAN0_MAC"] = *obs.Interface.WirelessMAC
	}
	if obs.Interface.WiredMAC != nil {
		status["LAN0_MAC"] = *obs.Interface.WiredMAC
	}
	setIfPresent(status, "AP_MAC", cfg["ap_mac"])
	setIfPresent(status, "Intensidad_Senal", cfg["signal_strength"])
	setIfPresent(status, "Umbral_Ruido", cfg["noise_threshold"])
	setIfPresent(status, "Transmitir_CCQ", cfg["ccq"])
	status["Ultima_Actualizacion"] = now.Format(lastUpdatedLayout)

	return status, true
}

func setIfPresent(section Section, label, value string) {
	if value != "" {
		section[label] = value
	}
}

func sanitizeSections(sections map[string]Section) map[string]Section {
	sanitized := make(map[string]Section, len(sections))
	for name, section := range sections {
		clean := make(Section, len(section))
		for label, value := range section {
			clean[SanitizeKey(label)] = value
		}
		sanitized[SanitizeKey(name)] = clean
	}

	return sanitized
}
