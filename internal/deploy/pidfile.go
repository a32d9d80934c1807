// SPDX-License-Identifier: Apache-2.0

package deploy

import (
	"os"
	"strconv"
	"strings"

	"github.com/joomcode/errorx"

	"github.com/cursor-nexus/nexusctl/internal/core"
)

// WritePidFile records the pid of a detached service process.
func WritePidFile(path string, pid int) error {
	data := []byte(strconv.Itoa(pid) + "\n")
	if err := os.WriteFile(path, data, core.DefaultFileMode); err != nil {
		return errorx.ExternalError.Wrap(err, "failed to write pid file %s", path)
	}

	return nil
}

// ReadPidFile returns the recorded pid. A missing file is a
// DataUnavailable error, not a crash.
func ReadPidFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return 0, errorx.DataUnavailable.New("no pid file at %s, is the service running?", path)
	}

	if err != nil {
		return 0, errorx.ExternalError.Wrap(err, "failed to read pid file %s", path)
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, errorx.IllegalFormat.New("pid file %s is corrupt", path)
	}

	return pid, nil
}

// RemovePidFile deletes the pid file, tolerating its absence.
func RemovePidFile(path string) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return errorx.ExternalError.Wrap(err, "failed to remove pid file %s", path)
	}

	return nil
}
