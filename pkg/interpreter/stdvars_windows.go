//go:build windows

package interpreter

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// osVersion reports the major.minor.build version.
func osVersion() string {
	v := windows.RtlGetVersion()
	return fmt.Sprintf("%d.%d.%d", v.MajorVersion, v.MinorVersion, v.BuildNumber)
}
