//go:build windows

package main

import "os"

// interruptSignals: Windows 仅支持 Ctrl+C。
var interruptSignals = []os.Signal{os.Interrupt}
