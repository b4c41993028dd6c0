package interrupt

import (
	"sync/atomic"

	"shotbot/internal/console"
	"shotbot/internal/logger"
)

// InterruptManager управляет горячими клавишами
type InterruptManager struct {
	commandChan   chan console.Command
	isShotRunning atomic.Bool
	loggerManager *logger.LoggerManager
}

// NewInterruptManager создает новый менеджер прерываний
func NewInterruptManager(loggerManager *logger.LoggerManager) *InterruptManager {
	return &InterruptManager{
		commandChan:   make(chan console.Command, 1),
		loggerManager: loggerManager,
	}
}

// GetCommandChan возвращает канал команд с горячих клавиш
func (im *InterruptManager) GetCommandChan() <-chan console.Command {
	return im.commandChan
}

// SetShotRunning устанавливает состояние выполнения удара
func (im *InterruptManager) SetShotRunning(running bool) {
	im.isShotRunning.Store(running)
}

// IsShotRunning возвращает состояние выполнения удара
func (im *InterruptManager) IsShotRunning() bool {
	return im.isShotRunning.Load()
}

// dispatch отправляет команду; во время удара и при полной очереди команда отбрасывается
func (im *InterruptManager) dispatch(cmd console.Command) bool {
	if cmd != console.CmdQuit && im.IsShotRunning() {
		im.loggerManager.Debug("⏭️ Удар уже выполняется, %s пропущен", cmd)
		return false
	}
	select {
	case im.commandChan <- cmd:
		return true
	default:
		im.loggerManager.Debug("⏭️ Очередь команд занята, %s пропущен", cmd)
		return false
	}
}
