package arduino

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/tarm/serial"
)

// ErrUnexpectedResponse Arduino ответил не тем, что ожидалось
var ErrUnexpectedResponse = errors.New("unexpected response from Arduino")

// InitializePort открывает последовательный порт Arduino
func InitializePort(name string, baud int, readTimeout time.Duration) (*serial.Port, error) {
	port, err := serial.OpenPort(&serial.Config{
		Name:        name,
		Baud:        baud,
		ReadTimeout: readTimeout,
		Parity:      serial.ParityNone,
		StopBits:    serial.Stop1,
	})
	if err != nil {
		return nil, fmt.Errorf("error opening arduino port %s: %w", name, err)
	}
	return port, nil
}

// SendCommand пишет одну строку команды в порт
func SendCommand(w io.Writer, command string) error {
	if _, err := io.WriteString(w, command+"\n"); err != nil {
		return fmt.Errorf("error writing %q to Arduino: %w", command, err)
	}
	return nil
}

// ReadResponse читает одну строку ответа без перевода строки и пробелов по краям
func ReadResponse(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("error reading from Arduino: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// WaitForArduinoResponse ждет строку ответа и сверяет ее с ожидаемой
func WaitForArduinoResponse(r *bufio.Reader, expectedResponse string) (string, error) {
	response, err := ReadResponse(r)
	if err != nil {
		return "", err
	}
	if response != expectedResponse {
		return "", fmt.Errorf("%w: '%s'", ErrUnexpectedResponse, response)
	}
	return response, nil
}
