//go:build !windows

package interrupt

// StartMonitoring глобальные хуки клавиатуры есть только в Windows, здесь команды идут с консоли
func (im *InterruptManager) StartMonitoring() {
	im.loggerManager.Info("⌨️ Горячие клавиши недоступны на этой платформе, используйте консоль")
}
