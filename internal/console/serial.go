package console

import (
	"errors"
	"fmt"

	"go.bug.st/serial"
)

// DefaultBaud matches the board's debug console.
const DefaultBaud = 115200

// OpenSerial opens the named serial device as an 8N1 line at baud.
func OpenSerial(name string, baud int) (serial.Port, error) {
	if name == "" {
		return nil, fmt.Errorf("serial device is empty")
	}
	if baud <= 0 {
		baud = DefaultBaud
	}
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(name, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", name, err)
	}
	return port, nil
}

// ListSerial returns the serial devices present on the host.
func ListSerial() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to list serial ports: %w", err)
	}
	return ports, nil
}

func isClosed(err error) bool {
	var perr *serial.PortError
	return errors.As(err, &perr) && perr.Code() == serial.PortClosed
}
