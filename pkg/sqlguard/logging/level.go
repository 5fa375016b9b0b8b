package logging

import (
	"bytes"
	"strings"
)

// Level represents the severity of a log entry.
type Level int

const (
	DEBUG Level = iota + 1
	INFO
	NOTICE
	WARN
	ERROR
	FATAL
)

const (
	normalColor = 0
	redColor    = 31
	yellowColor = 33
	blueColor   = 34
	greyColor   = 37
)

func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case NOTICE:
		return "NOTICE"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	case FATAL:
		return "FATAL"
	default:
		return ""
	}
}

//nolint:gomnd // color codes are sent as numbers
func (l Level) color() uint {
	switch l {
	case ERROR, FATAL:
		return redColor
	case WARN, NOTICE:
		return yellowColor
	case INFO:
		return blueColor
	case DEBUG:
		return greyColor
	default:
		return normalColor
	}
}

func (l Level) MarshalJSON() ([]byte, error) {
	buffer := bytes.NewBufferString(`"`)
	buffer.WriteString(l.String())
	buffer.WriteString(`"`)

	return buffer.Bytes(), nil
}

// GetLevelFromString parses a LOG_LEVEL value. Unknown values fall back to INFO.
func GetLevelFromString(level string) Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return DEBUG
	case "INFO":
		return INFO
	case "NOTICE":
		return NOTICE
	case "WARN":
		return WARN
	case "ERROR":
		return ERROR
	case "FATAL":
		return FATAL
	default:
		return INFO
	}
}
