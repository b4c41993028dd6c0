package main

import (
	"errors"
	"fmt"
	"image"
	"log"
	"os"

	"github.com/spf13/pflag"

	"shotbot/internal/arduino"
	"shotbot/internal/capture"
	"shotbot/internal/config"
	"shotbot/internal/console"
	"shotbot/internal/database"
	"shotbot/internal/input"
	"shotbot/internal/interrupt"
	"shotbot/internal/locator"
	"shotbot/internal/logger"
	"shotbot/internal/screenshot"
	"shotbot/internal/shot"
	"shotbot/internal/window"
)

func main() {
	// init конфигурации
	fs := config.Flags(os.Args[0])
	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		log.Fatal("Error parsing flags: ", err)
	}
	c, err := config.Load(fs)
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	// Инициализация логгера
	loggerManager, err := logger.NewLoggerManager(c.LogFilePath)
	if err != nil {
		log.Fatal("Error initializing logger: ", err)
	}

	loggerManager.Info("🚀 Запуск shotbot")
	err = run(c, loggerManager)
	if err != nil {
		loggerManager.LogError(err, "Аварийное завершение")
	}
	loggerManager.Close()
	if err != nil {
		os.Exit(1)
	}
}

func run(c *config.Config, loggerManager *logger.LoggerManager) error {
	gamePoint := image.Pt(c.Game.X, c.Game.Y)
	display, err := capture.CheckDisplay(gamePoint)
	if err != nil {
		return err
	}
	loggerManager.Info("🖥️ Дисплей: %v", display)

	source, closeSource, err := capture.NewSource(c.Capture)
	if err != nil {
		return err
	}
	defer closeSource()

	pointer, closePointer, err := newPointer(c)
	if err != nil {
		return err
	}
	defer closePointer()

	// Поиск окна игры вместо координат из конфигурации
	if c.Game.AutoDetect {
		windowInitializer := window.NewWindowInitializer(source, display, c.Game.TopOffset, loggerManager)
		origin, err := windowInitializer.DetectGameOrigin()
		if err != nil {
			return fmt.Errorf("ошибка инициализации окна: %w", err)
		}
		c.Game.X, c.Game.Y = origin.X, origin.Y
	}

	screenshotManager := screenshot.NewScreenshotManager(source, c.SnapshotDir, c.SaveSnapshots == 1)

	if !c.Ready {
		return inspect(c, display, pointer, screenshotManager)
	}

	settings, err := shotSettings(c)
	if err != nil {
		return err
	}
	opts := []shot.Option{shot.WithSnapshots(screenshotManager)}

	if c.SaveToDB == 1 {
		db, err := database.Open(c.Database)
		if err != nil {
			return err
		}
		defer db.Close()
		loggerManager.Info("✅ Успешное подключение к базе данных")

		dbManager := database.NewDatabaseManager(db, loggerManager)
		if err := dbManager.EnsureSchema(); err != nil {
			return err
		}
		defer dbManager.WaitForAsyncOperations()
		opts = append(opts, shot.WithJournal(dbManager, c.SaveSnapshots == 1))
	}

	shooter := shot.NewShooter(pointer, source, settings, loggerManager, opts...)

	// Инициализация менеджера прерываний
	interruptManager := interrupt.NewInterruptManager(loggerManager)
	interruptManager.StartMonitoring()

	loggerManager.Info("⏸️ Программа готова к работе, окно игры в %v", c.GameRect())
	cons := console.NewConsole(os.Stdin, os.Stdout, &hotkeyAwareShooter{shooter, interruptManager}, loggerManager)
	return cons.Run(interruptManager.GetCommandChan())
}

// inspect печатает параметры дисплея и позицию указателя, сохраняет снимок окна игры
func inspect(c *config.Config, display image.Rectangle, pointer input.Pointer, screenshotManager *screenshot.ScreenshotManager) error {
	fmt.Printf("display = %v\n", display)
	pos, err := pointer.Position()
	if err != nil {
		return fmt.Errorf("failed to read pointer position: %w", err)
	}
	fmt.Printf("mouse pos = %v\n", pos)

	path, err := screenshotManager.SaveScreenshot(c.GameRect(), "game.png")
	if err != nil {
		return err
	}
	fmt.Printf("game window saved to %s\n", path)
	return nil
}

func newPointer(c *config.Config) (input.Pointer, func() error, error) {
	backend, err := input.ParseBackend(c.Input)
	if err != nil {
		return nil, nil, err
	}
	if backend == input.BackendArduino {
		// Инициализация порта с использованием значений из конфигурации
		port, err := arduino.InitializePort(c.Arduino.Port, c.Arduino.BaudRate, c.Arduino.ReadTimeout)
		if err != nil {
			return nil, nil, err
		}
		return arduino.NewPointer(port), port.Close, nil
	}
	p, err := input.NewX11Pointer("")
	if err != nil {
		return nil, nil, err
	}
	return p, p.Close, nil
}

func shotSettings(c *config.Config) (shot.Settings, error) {
	trackerConfig, err := c.TrackerConfig()
	if err != nil {
		return shot.Settings{}, err
	}
	template := locator.DefaultTemplate
	if c.Locator.TemplatePath != "" {
		template, err = locator.LoadTemplate(c.Locator.TemplatePath)
		if err != nil {
			return shot.Settings{}, err
		}
	}
	return shot.Settings{
		Geometry:   c.Geometry(),
		Tracking:   trackerConfig,
		Template:   template,
		Stride:     c.Locator.Stride,
		AimLength:  c.Locator.AimLength,
		FocusDelay: c.FocusDelay,
	}, nil
}

// hotkeyAwareShooter отмечает выполнение удара, чтобы горячие клавиши не копились в очереди
type hotkeyAwareShooter struct {
	shooter          *shot.Shooter
	interruptManager *interrupt.InterruptManager
}

func (h *hotkeyAwareShooter) TakeShot(t shot.ShotType) (shot.Result, error) {
	h.interruptManager.SetShotRunning(true)
	defer h.interruptManager.SetShotRunning(false)
	return h.shooter.TakeShot(t)
}
