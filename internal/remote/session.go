// Package remote manages the stateful SFTP session used to read the
// server log from the game host.
package remote

import (
	"fmt"
	"log"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"

	"github.com/craftwatch/craftwatch/internal/config"
)

// FileSession lazily establishes and health-checks a single SFTP session.
// Exactly one handle is held process-wide; it is reused across polls to
// avoid re-authenticating every few seconds, unlike the RCON channel
// which reconnects per query. Only the watch loop touches it.
type FileSession struct {
	cfg  config.SFTPConfig
	ssh  *ssh.Client
	sftp *sftp.Client
}

func NewFileSession(cfg config.SFTPConfig) *FileSession {
	return &FileSession{cfg: cfg}
}

// Configured reports whether the session has enough settings to connect.
// When false, log tailing over SFTP is disabled rather than an error.
func (s *FileSession) Configured() bool {
	return s.cfg.Host != "" && s.cfg.Username != "" && s.cfg.Password != ""
}

// Get returns a live SFTP client, reusing the existing session when a
// cheap round-trip probe succeeds and reconnecting otherwise. It returns
// nil when the session is unconfigured or the connect fails; callers must
// treat nil as "skip log tailing this tick", never as fatal.
func (s *FileSession) Get() *sftp.Client {
	if !s.Configured() {
		return nil
	}

	if s.sftp != nil {
		if _, err := s.sftp.Getwd(); err == nil {
			return s.sftp
		}
		// Connection died; drop it and reconnect below.
		s.Close()
	}

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	sshConf := &ssh.ClientConfig{
		User:            s.cfg.Username,
		Auth:            []ssh.AuthMethod{ssh.Password(s.cfg.Password)},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         s.cfg.ConnectTimeout,
	}

	sshClient, err := ssh.Dial("tcp", addr, sshConf)
	if err != nil {
		log.Printf("[sftp] connection to %s failed: %v", addr, err)
		return nil
	}
	sftpClient, err := sftp.NewClient(sshClient)
	if err != nil {
		log.Printf("[sftp] subsystem open failed: %v", err)
		sshClient.Close()
		return nil
	}

	s.ssh = sshClient
	s.sftp = sftpClient
	log.Printf("[sftp] connected to %s", addr)
	return s.sftp
}

// Close tears down the current session, if any. Safe to call repeatedly.
func (s *FileSession) Close() {
	if s.sftp != nil {
		s.sftp.Close()
		s.sftp = nil
	}
	if s.ssh != nil {
		s.ssh.Close()
		s.ssh = nil
	}
}
