// SPDX-License-Identifier: Apache-2.0

package prereq

import (
	"sync"

	"github.com/automa-saga/logx"
	"github.com/bluet/syspkg"
	"github.com/bluet/syspkg/manager"
	"github.com/joomcode/errorx"
)

var (
	pkgManager syspkg.PackageManager
	once       sync.Once
)

func getPackageManager() (syspkg.PackageManager, error) {
	var initErr error
	once.Do(func() {
		includeOptions := syspkg.IncludeOptions{AllAvailable: true}
		sysPackageManager, err := syspkg.New(includeOptions)
		if err != nil {
			initErr = errorx.InitializationFailed.Wrap(err, "failed to initialize system package manager")
			return
		}

		// Let syspkg automatically detect the best available package manager
		pm, err := sysPackageManager.GetPackageManager("")
		if err != nil {
			initErr = errorx.DataUnavailable.Wrap(err, "no supported system package manager found")
			return
		}

		pkgManager = pm
	})

	return pkgManager, initErr
}

// InstallPackages installs the given system packages non-interactively
// through the host's package manager.
func InstallPackages(names []string) error {
	if len(names) == 0 {
		return nil
	}

	pm, err := getPackageManager()
	if err != nil {
		return err
	}

	opts := manager.Options{DryRun: false, Interactive: false, AssumeYes: true}

	installed, err := pm.Install(names, &opts)
	if err != nil {
		return errorx.ExternalError.Wrap(err, "failed to install packages %v", names)
	}

	for _, info := range installed {
		logx.As().Info().
			Str("name", info.Name).
			Str("version", info.Version).
			Str("status", string(info.Status)).
			Msg("System package installed")
	}

	return nil
}
