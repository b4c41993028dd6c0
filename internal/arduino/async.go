package arduino

import (
	"bufio"
	"fmt"
	"io"
)

// ProcessAndWait отправляет команду и дожидается подтверждения "received"
func ProcessAndWait(w io.Writer, r *bufio.Reader, command string) error {
	if err := SendCommand(w, command); err != nil {
		return err
	}
	if _, err := WaitForArduinoResponse(r, "received"); err != nil {
		return fmt.Errorf("error waiting for Arduino response to %q: %w", command, err)
	}
	return nil
}
