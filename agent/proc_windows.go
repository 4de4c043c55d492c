//go:build windows

package agent

import "os/exec"

func configureProcessGroup(cmd *exec.Cmd) {}
