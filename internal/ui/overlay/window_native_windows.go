//go:build windows

package overlay

import (
	"image/color"
	"syscall"
	"unsafe"

	"fyne.io/fyne/v2/driver"
)

const (
	gwlExStyle     int32 = -20
	wsExLayered          = 0x00080000
	wsExToolWindow       = 0x00000080
	lwaAlpha             = 0x2
	spiGetWorkArea       = 0x0030
	swpNoSize            = 0x0001
	swpNoActivate        = 0x0010
)

// hwndTopmost is (HWND)-1.
const hwndTopmost = ^uintptr(0)

var (
	user32DLL                      = syscall.NewLazyDLL("user32.dll")
	procGetWindowLongPtrW          = user32DLL.NewProc("GetWindowLongPtrW")
	procSetWindowLongPtrW          = user32DLL.NewProc("SetWindowLongPtrW")
	procSetLayeredWindowAttributes = user32DLL.NewProc("SetLayeredWindowAttributes")
	procSystemParametersInfoW      = user32DLL.NewProc("SystemParametersInfoW")
	procGetWindowRect              = user32DLL.NewProc("GetWindowRect")
	procSetWindowPos               = user32DLL.NewProc("SetWindowPos")
)

type rect struct {
	Left, Top, Right, Bottom int32
}

// Windows fades the whole layered window, so labels stay fully opaque.
func tileOpacity(float64) float64 {
	return 1
}

func (overlay *Window) applyNativeOpacity(opacity float64) {
	alpha := scaleAlpha(color.NRGBA{A: 0xff}, opacity).A
	overlay.runNative(func(hwnd uintptr) {
		style, _, _ := procGetWindowLongPtrW.Call(hwnd, int32ToUintptr(gwlExStyle))
		if style&(wsExLayered|wsExToolWindow) != wsExLayered|wsExToolWindow {
			procSetWindowLongPtrW.Call(hwnd, int32ToUintptr(gwlExStyle), style|wsExLayered|wsExToolWindow)
		}
		procSetLayeredWindowAttributes.Call(hwnd, 0, uintptr(alpha), uintptr(lwaAlpha))
	})
}

// anchorToCorner moves the window to the bottom-right of the work area
// (excluding the task bar) and keeps it above other windows.
func (overlay *Window) anchorToCorner() {
	overlay.runNative(func(hwnd uintptr) {
		var workArea rect
		if ok, _, _ := procSystemParametersInfoW.Call(spiGetWorkArea, 0, uintptr(unsafe.Pointer(&workArea)), 0); ok == 0 {
			return
		}
		var bounds rect
		if ok, _, _ := procGetWindowRect.Call(hwnd, uintptr(unsafe.Pointer(&bounds))); ok == 0 {
			return
		}
		x := workArea.Right - (bounds.Right - bounds.Left)
		y := workArea.Bottom - (bounds.Bottom - bounds.Top)
		procSetWindowPos.Call(hwnd, hwndTopmost, int32ToUintptr(x), int32ToUintptr(y), 0, 0, swpNoSize|swpNoActivate)
	})
}

func (overlay *Window) runNative(apply func(hwnd uintptr)) {
	nativeWindow, ok := overlay.window.(driver.NativeWindow)
	if !ok {
		return
	}

	nativeWindow.RunNative(func(context any) {
		var hwnd uintptr
		switch value := context.(type) {
		case driver.WindowsWindowContext:
			hwnd = value.HWND
		case *driver.WindowsWindowContext:
			hwnd = value.HWND
		default:
			return
		}
		if hwnd == 0 {
			return
		}
		apply(hwnd)
	})
}

func int32ToUintptr(value int32) uintptr {
	return uintptr(uint32(value))
}
