// Package sshclient executes single commands on fleet devices over SSH. The
// devices only speak password auth on a private management network, so host
// keys are not checked.
package sshclient

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"golang.org/x/crypto/ssh"
)

type clientConfig struct {
	Port           int           `env:"SSH_PORT" env-default:"22"`
	DialTimeout    time.Duration `env:"SSH_DIAL_TIMEOUT" env-default:"5s"`
	CommandTimeout time.Duration `env:"SSH_COMMAND_TIMEOUT" env-default:"10s"`
}

// Client dials a fresh connection per command. AirOS drops idle sessions
// quickly, so holding connections across a 30 second poll pause buys nothing.
type Client struct {
	config clientConfig
}

func NewClient() (*Client, error) {
	var config clientConfig
	if err := cleanenv.ReadEnv(&config); err != nil {
		return nil, fmt.Errorf("ssh config read failed: %w", err)
	}

	return &Client{config: config}, nil
}

// Run executes one command on the device at addr and returns its stdout. Any
// failure along the way surfaces as an error; the caller treats that as an
// absent blob.
func (c *Client) Run(ctx context.Context, addr, user, password, command string) (string, error) {
	hostPort := net.JoinHostPort(addr, strconv.Itoa(c.config.Port))

	dialer := net.Dialer{Timeout: c.config.DialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", hostPort)
	if err != nil {
		return "", fmt.Errorf("dial %s failed: %w", hostPort, err)
	}

	// The deadline bounds the whole exchange, handshake included.
	if err := conn.SetDeadline(time.Now().Add(c.config.CommandTimeout)); err != nil {
		conn.Close()
		return "", fmt.Errorf("set deadline on %s failed: %w", hostPort, err)
	}

	sshConn, channels, requests, err := ssh.NewClientConn(conn, hostPort, &ssh.ClientConfig{
		User:            user,
		Auth:            []ssh.AuthMethod{ssh.Password(password)},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         c.config.DialTimeout,
	})
	if err != nil {
		conn.Close()
		return "", fmt.Errorf("ssh handshake with %s failed: %w", hostPort, err)
	}

	client := ssh.NewClient(sshConn, channels, requests)
	defer client.Close()

	session, err := client.NewSession()
	if err != nil {
		return "", fmt.Errorf("ssh session on %s failed: %w", hostPort, err)
	}
	defer session.Close()

	output, err := session.Output(command)
	if err != nil {
		return "", fmt.Errorf("command %q on %s failed: %w", command, hostPort, err)
	}

	return string(output), nil
}
