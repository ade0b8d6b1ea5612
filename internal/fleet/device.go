package fleet

import (
	"context"

	"github.com/wisplabs/antenna-poller/internal/extract"
	"github.com/wisplabs/antenna-poller/internal/record"
)

// The seven commands issued per device per round.
const (
	cmdTop       = "top -b -n1 | head -5"
	cmdNetDev    = "cat /proc/net/dev"
	cmdIfconfig  = "ifconfig"
	cmdUptime    = "uptime"
	cmdSystemCfg = "cat /tmp/system.cfg"
	cmdDate      = "date"
	cmdAirmax    = "ubntbox cmd --airmax-status"
)

// CommandRunner executes one command on a remote device and returns its raw
// output. Implementations own timeout and failure policy; the poller treats
// any error as an absent blob.
type CommandRunner interface {
	Run(ctx context.Context, addr, user, password, command string) (string, error)
}

// collectDevice runs all seven commands against one device and assembles its
// record. It returns nil when no command produced a single section, so an
// unreachable device contributes nothing to the snapshot.
func (p *Poller) collectDevice(ctx context.Context, device Device) *record.DeviceRecord {
	observation := record.Observation{
		Top:           extract.Top(p.commandOutput(ctx, device, cmdTop)),
		NetDev:        extract.NetDev(p.commandOutput(ctx, device, cmdNetDev)),
		Interface:     extract.Ifconfig(p.commandOutput(ctx, device, cmdIfconfig)),
		UptimeSeconds: extract.Uptime(p.commandOutput(ctx, device, cmdUptime)),
		SystemConfig:  extract.SystemConfig(p.commandOutput(ctx, device, cmdSystemCfg)),
		Airmax:        extract.Airmax(p.commandOutput(ctx, device, cmdAirmax)),
		RemoteDate:    extract.RemoteDate(p.commandOutput(ctx, device, cmdDate)),
	}

	assembled := record.Assemble(device.Name, device.IP, observation, p.now())
	if len(assembled.Sections) == 0 {
		p.logger.Warn("Device produced no data, dropping from snapshot", "device", device.ID, "ip", device.IP)
		return nil
	}

	return &assembled
}

// commandOutput runs one command and converts a transport failure into an
// empty blob. The extractors short-circuit on empty input.
func (p *Poller) commandOutput(ctx context.Context, device Device, command string) string {
	output, err := p.runner.Run(ctx, device.IP, device.SSHUser, device.SSHPassword, command)
	if err != nil {
		p.logger.Debug("Remote command produced no data", "device", device.ID, "command", command, "error", err)
		return ""
	}

	return output
}
