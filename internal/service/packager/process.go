package packager

import (
	"context"
	"os"
	"runtime"

	"github.com/mitchellh/go-ps"

	"github.com/oshokin/apk-packager/internal/logger"
)

// baseExecutable is the packager binary name without platform extension.
const baseExecutable = "apk-packager"

// isPackagerRunningNow scans the process table for another packager instance.
// An unreadable process table is logged and treated as "not running".
func isPackagerRunningNow(ctx context.Context) bool {
	processList, err := ps.Processes()
	if err != nil {
		logger.WarnKV(ctx, "Unable to list processes, skipping concurrency check", "error", err)
		return false
	}

	var (
		thisProcessID = os.Getpid()
		name          = executableName()
	)

	for _, process := range processList {
		if process.Pid() == thisProcessID {
			continue
		}

		if process.Executable() == name {
			logger.WarnKV(ctx, "Another packager process found", "pid", process.Pid())
			return true
		}
	}

	return false
}

// executableName returns the packager binary name for the current platform.
func executableName() string {
	if runtime.GOOS == "windows" {
		return baseExecutable + ".exe"
	}

	return baseExecutable
}
