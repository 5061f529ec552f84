package platform

import (
	"bufio"
	"errors"
	"fmt"
	"hash/fnv"
	"log"
	"net"
	"strings"
	"time"
)

// ErrAlreadyRunning indicates another instance already holds the lock.
var ErrAlreadyRunning = errors.New("instance already running")

const (
	activateMessage = "show"
	dialTimeout     = time.Second
)

// InstanceGuard holds the single-instance lock. The lock is a localhost
// listener on a port derived from the lock key, so one widget runs per
// data directory.
type InstanceGuard struct {
	listener net.Listener
	address  string
}

// AcquireSingleInstance takes the lock for key or returns an error
// wrapping ErrAlreadyRunning.
func AcquireSingleInstance(key string) (*InstanceGuard, error) {
	address := instanceAddress(key)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrAlreadyRunning, address, err)
	}
	return &InstanceGuard{listener: listener, address: address}, nil
}

// Serve calls onActivate whenever another launch asks the running widget to
// show itself. It returns immediately; the accept loop ends on Release.
func (guard *InstanceGuard) Serve(onActivate func()) {
	go func() {
		for {
			conn, err := guard.listener.Accept()
			if err != nil {
				if !errors.Is(err, net.ErrClosed) {
					log.Printf("[instance] accept: %v", err)
				}
				return
			}
			go handleActivation(conn, onActivate)
		}
	}()
}

// Release frees the single instance lock.
func (guard *InstanceGuard) Release() error {
	if guard == nil || guard.listener == nil {
		return nil
	}
	return guard.listener.Close()
}

// Address returns the bound address.
func (guard *InstanceGuard) Address() string {
	if guard == nil {
		return ""
	}
	return guard.address
}

// Activate asks the instance holding key to show its overlay.
func Activate(key string) error {
	conn, err := net.DialTimeout("tcp", instanceAddress(key), dialTimeout)
	if err != nil {
		return fmt.Errorf("activate running instance: %w", err)
	}
	defer conn.Close()

	_ = conn.SetDeadline(time.Now().Add(dialTimeout))
	if _, err := fmt.Fprintln(conn, activateMessage); err != nil {
		return fmt.Errorf("activate running instance: %w", err)
	}
	return nil
}

func handleActivation(conn net.Conn, onActivate func()) {
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(dialTimeout))

	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		return
	}
	if strings.TrimSpace(line) == activateMessage && onActivate != nil {
		onActivate()
	}
}

func instanceAddress(key string) string {
	return fmt.Sprintf("127.0.0.1:%d", portFromKey(key))
}

func portFromKey(key string) int {
	const (
		minPort = 20000
		maxPort = 39999
	)
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(key))
	rangeSize := maxPort - minPort + 1
	return minPort + int(hash.Sum32()%uint32(rangeSize))
}
