//go:build windows

package interrupt

import (
	"github.com/moutend/go-hook/pkg/keyboard"
	"github.com/moutend/go-hook/pkg/types"

	"shotbot/internal/console"
)

// hotkeys Shift+<буква> -> команда
var hotkeys = map[types.VKCode]console.Command{
	types.VK_C: console.CmdCenter,
	types.VK_L: console.CmdLob,
	types.VK_M: console.CmdManual,
	types.VK_A: console.CmdAimed,
	types.VK_Q: console.CmdQuit,
}

// StartMonitoring запускает мониторинг горячих клавиш
func (im *InterruptManager) StartMonitoring() {
	im.loggerManager.Info("🔥 Горячие клавиши: Shift+C, Shift+L, Shift+M, Shift+A, Shift+Q для выхода")
	go im.monitorHotkeys()
}

// monitorHotkeys мониторит горячие клавиши
func (im *InterruptManager) monitorHotkeys() {
	eventChan := make(chan types.KeyboardEvent, 100)
	if err := keyboard.Install(nil, eventChan); err != nil {
		im.loggerManager.LogError(err, "Ошибка установки хука клавиатуры")
		return
	}
	defer keyboard.Uninstall()

	shiftPressed := false

	for event := range eventChan {
		isShift := event.VKCode == types.VK_LSHIFT || event.VKCode == types.VK_RSHIFT
		if event.Message == types.WM_KEYDOWN && isShift {
			shiftPressed = true
		}
		if event.Message == types.WM_KEYUP && isShift {
			shiftPressed = false
		}
		if event.Message != types.WM_KEYDOWN || !shiftPressed {
			continue
		}
		if cmd, ok := hotkeys[event.VKCode]; ok {
			im.dispatch(cmd)
		}
	}
}
