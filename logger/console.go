package logger

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

type levelStyle struct {
	tag   string
	color int
}

var levelStyles = map[string]levelStyle{
	zerolog.LevelDebugValue: {"DBG", 36},
	zerolog.LevelInfoValue:  {"INF", 32},
	zerolog.LevelWarnValue:  {"WRN", 33},
	zerolog.LevelErrorValue: {"ERR", 31},
	zerolog.LevelFatalValue: {"FTL", 35},
}

func paint(s string, color int, noColor bool) string {
	if noColor {
		return s
	}
	return fmt.Sprintf("\033[%dm%s\033[0m", color, s)
}

// consoleWriter renders events as "[SVC][LVL] message key:value".
// SVC is the upper-cased first three letters of the service name.
func consoleWriter(w io.Writer, serviceName string, noColor bool) zerolog.ConsoleWriter {
	prefix := ""
	if named(serviceName) && len(serviceName) >= 3 {
		prefix = paint("["+strings.ToUpper(serviceName[:3])+"]", 34, noColor)
	}

	return zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    noColor,
		TimeFormat: "15:04:05",
		FormatLevel: func(v interface{}) string {
			name, _ := v.(string)
			style, ok := levelStyles[name]
			if !ok {
				return prefix + "[" + strings.ToUpper(name) + "]"
			}
			return prefix + paint("["+style.tag+"]", style.color, noColor)
		},
		FormatFieldName: func(v interface{}) string {
			return fmt.Sprint(v) + ":"
		},
	}
}
