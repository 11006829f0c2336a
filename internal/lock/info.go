package lock

import (
	"encoding/json"
	"os"
	"strconv"
	"time"
)

// Info contains metadata about who holds the lock.
type Info struct {
	User    string    `json:"user"`
	Host    string    `json:"host"`
	Started time.Time `json:"started"`
	PID     int       `json:"pid"`
}

// NewInfo creates an Info for the current process.
func NewInfo() *Info {
	host, err := os.Hostname()
	if err != nil {
		host = "unknown"
	}

	user := os.Getenv("USER")
	if user == "" {
		user = "unknown"
	}

	return &Info{
		User:    user,
		Host:    host,
		Started: time.Now(),
		PID:     os.Getpid(),
	}
}

// Age returns how long ago the lock was acquired.
func (i *Info) Age() time.Duration {
	return time.Since(i.Started)
}

// Marshal serializes the Info to JSON.
func (i *Info) Marshal() ([]byte, error) {
	return json.Marshal(i)
}

// ParseInfo deserializes JSON data into an Info.
func ParseInfo(data []byte) (*Info, error) {
	var info Info
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// String returns a human-readable description of who holds the lock.
func (i *Info) String() string {
	return i.User + "@" + i.Host + " (pid " + strconv.Itoa(i.PID) + ")"
}
