package internal

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
)

var (
	machineIDMu     sync.Mutex
	machineIDCached string
)

// MachineID returns a stable identifier for this host, created on first use
// and persisted under the hive-mind directory. It is used only for header
// provenance, never for access control.
func MachineID() (string, error) {
	machineIDMu.Lock()
	defer machineIDMu.Unlock()

	if machineIDCached != "" {
		return machineIDCached, nil
	}

	hiveDir, err := HiveDir()
	if err != nil {
		return "", err
	}

	id, err := machineIDFrom(filepath.Join(hiveDir, "machine-id"))
	if err != nil {
		return "", err
	}
	machineIDCached = id
	return id, nil
}

// machineIDFrom reads the persisted machine id at path, generating and
// writing a fresh one when the file does not exist.
func machineIDFrom(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		if id := strings.TrimSpace(string(data)); id != "" {
			return id, nil
		}
	} else if !os.IsNotExist(err) {
		return "", err
	}

	id := uuid.NewString()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(id+"\n"), 0600); err != nil {
		return "", err
	}
	return id, nil
}
