package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"shotbot/internal/logger"
	"shotbot/internal/shot"
)

// Command команда оператора: с консоли или горячей клавишей
type Command int

const (
	CmdCenter Command = iota
	CmdLob
	CmdManual
	CmdAimed
	CmdQuit
)

const (
	Prompt = "> "
	Usage  = "Shot types: [c]enter, [l]ob, [m]anual, [a]imed, [q]uit"
)

func (c Command) String() string {
	switch c {
	case CmdQuit:
		return "quit"
	}
	if t, ok := c.ShotType(); ok {
		return t.String()
	}
	return fmt.Sprintf("Command(%d)", int(c))
}

// ShotType вид удара для команды; false для quit
func (c Command) ShotType() (shot.ShotType, bool) {
	switch c {
	case CmdCenter:
		return shot.Center, true
	case CmdLob:
		return shot.Lob, true
	case CmdManual:
		return shot.Manual, true
	case CmdAimed:
		return shot.Aimed, true
	}
	return 0, false
}

// ParseCommand разбирает однобуквенную команду
func ParseCommand(line string) (Command, bool) {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "c":
		return CmdCenter, true
	case "l":
		return CmdLob, true
	case "m":
		return CmdManual, true
	case "a":
		return CmdAimed, true
	case "q":
		return CmdQuit, true
	}
	return 0, false
}

// Shooter исполнитель ударов
type Shooter interface {
	TakeShot(t shot.ShotType) (shot.Result, error)
}

// Console цикл команд оператора
type Console struct {
	in      io.Reader
	out     io.Writer
	shooter Shooter
	logger  *logger.LoggerManager
}

// NewConsole создает консоль
func NewConsole(in io.Reader, out io.Writer, shooter Shooter, loggerManager *logger.LoggerManager) *Console {
	return &Console{in: in, out: out, shooter: shooter, logger: loggerManager}
}

// Run читает команды со входа и из hotkeys (может быть nil), пока не придет quit
// или не закончится ввод. Удары выполняются по одному.
func (c *Console) Run(hotkeys <-chan Command) error {
	done := make(chan struct{})
	defer close(done)
	lines, readErr := c.readLines(done)

	fmt.Fprintln(c.out, Usage)
	fmt.Fprint(c.out, Prompt)
	for {
		select {
		case line, ok := <-lines:
			if !ok {
				return <-readErr
			}
			cmd, ok := ParseCommand(line)
			if !ok {
				fmt.Fprintf(c.out, "Invalid input: %q. %s\n", line, Usage)
				fmt.Fprint(c.out, Prompt)
				continue
			}
			if c.execute(cmd) {
				return nil
			}
			fmt.Fprint(c.out, Prompt)
		case cmd := <-hotkeys:
			c.logger.Info("🔥 Горячая клавиша: %s", cmd)
			if c.execute(cmd) {
				return nil
			}
		}
	}
}

// execute выполняет команду; true означает выход
func (c *Console) execute(cmd Command) bool {
	t, ok := cmd.ShotType()
	if !ok {
		c.logger.Info("👋 Завершение работы")
		return true
	}
	c.logger.Info("🚀 Удар: %s", t)
	res, err := c.shooter.TakeShot(t)
	if err != nil {
		c.logger.LogError(err, fmt.Sprintf("Ошибка удара %s", t))
		return false
	}
	c.logger.Info("✅ %s за %v", res.Outcome, res.Duration)
	return false
}

// readLines читает строки в отдельной горутине; канал закрывается по концу ввода
func (c *Console) readLines(done <-chan struct{}) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		sc := bufio.NewScanner(c.in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-done:
				return
			}
		}
		errc <- sc.Err()
		close(lines)
	}()
	return lines, errc
}
