//go:build windows

package input

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// ViGEmDLL is the client library shipped alongside the ViGEmBus driver.
const ViGEmDLL = "ViGEmClient.dll"

const vigemErrorNone = 0x20000000

var (
	vigem               = windows.NewLazyDLL(ViGEmDLL)
	procAlloc           = vigem.NewProc("vigem_alloc")
	procFree            = vigem.NewProc("vigem_free")
	procConnect         = vigem.NewProc("vigem_connect")
	procDisconnect      = vigem.NewProc("vigem_disconnect")
	procTargetDS4Alloc  = vigem.NewProc("vigem_target_ds4_alloc")
	procTargetFree      = vigem.NewProc("vigem_target_free")
	procTargetAdd       = vigem.NewProc("vigem_target_add")
	procTargetRemove    = vigem.NewProc("vigem_target_remove")
	procTargetDS4Update = vigem.NewProc("vigem_target_ds4_update")
)

// DS4 is a virtual DualShock 4 plugged into the ViGEmBus.
type DS4 struct {
	reportState
	client uintptr
	target uintptr
}

// NewDS4 connects to the bus and plugs in a DualShock 4 in neutral state.
func NewDS4() (*DS4, error) {
	if err := vigem.Load(); err != nil {
		return nil, fmt.Errorf("load %s: %w", ViGEmDLL, err)
	}

	client, _, _ := procAlloc.Call()
	if client == 0 {
		return nil, fmt.Errorf("vigem_alloc failed")
	}
	if ret, _, _ := procConnect.Call(client); ret != vigemErrorNone {
		procFree.Call(client)
		return nil, fmt.Errorf("vigem_connect: error 0x%08X", ret)
	}

	target, _, _ := procTargetDS4Alloc.Call()
	if target == 0 {
		procDisconnect.Call(client)
		procFree.Call(client)
		return nil, fmt.Errorf("vigem_target_ds4_alloc failed")
	}
	if ret, _, _ := procTargetAdd.Call(client, target); ret != vigemErrorNone {
		procTargetFree.Call(target)
		procDisconnect.Call(client)
		procFree.Call(client)
		return nil, fmt.Errorf("vigem_target_add: error 0x%08X", ret)
	}

	g := &DS4{client: client, target: target}
	g.Reset()
	if err := g.Update(); err != nil {
		g.Close()
		return nil, err
	}
	return g, nil
}

// Update sends the buffered report to the bus.
func (g *DS4) Update() error {
	// DS4_REPORT is larger than 8 bytes, so the x64 ABI passes it by reference.
	report := g.report
	ret, _, _ := procTargetDS4Update.Call(g.client, g.target, uintptr(unsafe.Pointer(&report)))
	if ret != vigemErrorNone {
		return fmt.Errorf("vigem_target_ds4_update: error 0x%08X", ret)
	}
	return nil
}

// Close unplugs the controller and releases the bus connection.
func (g *DS4) Close() error {
	if g.target != 0 {
		procTargetRemove.Call(g.client, g.target)
		procTargetFree.Call(g.target)
		g.target = 0
	}
	if g.client != 0 {
		procDisconnect.Call(g.client)
		procFree.Call(g.client)
		g.client = 0
	}
	return nil
}
