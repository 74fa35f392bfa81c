package command

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse reads one command from its text form:
//
//	shutdown
//	timescale <factor>
//	event <target> <event>
//
// Keywords are case-insensitive. Target and event names are kept as written.
func Parse(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty line", ErrSyntax)
	}

	switch strings.ToLower(fields[0]) {
	case "shutdown", "quit":
		if len(fields) != 1 {
			return nil, fmt.Errorf("%w: shutdown takes no arguments", ErrSyntax)
		}
		return Shutdown{}, nil
	case "timescale":
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w: usage: timescale <factor>", ErrSyntax)
		}
		f, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad factor %q", ErrSyntax, fields[1])
		}
		return SetTimeScale{Factor: f}, nil
	case "event":
		if len(fields) != 3 {
			return nil, fmt.Errorf("%w: usage: event <target> <event>", ErrSyntax)
		}
		return TriggerEvent{Target: fields[1], Event: fields[2]}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknown, fields[0])
	}
}
