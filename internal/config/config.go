package config

import (
	"fmt"
	"strconv"
)

const (
	DefaultIconFile = "push.png"
	DefaultSDK      = "native"
	DefaultHistory  = 10
)

// Settings is built once from the command line and passed by value.
type Settings struct {
	Command    string // "" = generate, or list | history | version | help
	IconFile   string
	SDK        string
	Log        bool   // record the run in the history database
	MQTTBroker string // publish a run summary when non-empty
	HistoryN   int    // number of runs shown by "history"
	ClearLog   bool   // "history clear"
}

// UsageError reports malformed command-line input.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string { return e.Msg }

func usagef(format string, args ...any) error {
	return &UsageError{Msg: fmt.Sprintf(format, args...)}
}

// Parse reads args (without the program name). Both "--flag value" and
// "--flag=value" forms are accepted.
func Parse(args []string) (Settings, error) {
	s := Settings{IconFile: DefaultIconFile, SDK: DefaultSDK, HistoryN: DefaultHistory}

	var positional []string
	for i := 0; i < len(args); i++ {
		name, value, inline := splitFlag(args[i])

		takeValue := func() (string, error) {
			if inline {
				return value, nil
			}
			if i+1 >= len(args) {
				return "", usagef("%s requires a value", name)
			}
			i++
			return args[i], nil
		}

		switch name {
		case "--icon", "-i":
			v, err := takeValue()
			if err != nil {
				return Settings{}, err
			}
			s.IconFile = v
		case "--sdk", "-s":
			v, err := takeValue()
			if err != nil {
				return Settings{}, err
			}
			s.SDK = v
		case "--mqtt":
			v, err := takeValue()
			if err != nil {
				return Settings{}, err
			}
			s.MQTTBroker = v
		case "--log":
			s.Log = true
		case "help", "-h", "--help":
			s.Command = "help"
		case "version", "-V", "--version":
			s.Command = "version"
		case "list", "-l", "--list":
			s.Command = "list"
		case "history":
			s.Command = "history"
		default:
			if len(name) > 1 && name[0] == '-' {
				return Settings{}, usagef("unknown option %s", name)
			}
			positional = append(positional, args[i])
		}
	}

	switch {
	case s.Command == "history" && len(positional) == 1 && positional[0] == "clear":
		s.ClearLog = true
	case s.Command == "history" && len(positional) == 1:
		n, err := strconv.Atoi(positional[0])
		if err != nil || n < 0 {
			return Settings{}, usagef("history count must be a non-negative number")
		}
		s.HistoryN = n
	case len(positional) > 0:
		return Settings{}, usagef("unexpected argument %q", positional[0])
	}
	if s.IconFile == "" {
		return Settings{}, usagef("--icon must not be empty")
	}
	return s, nil
}

func splitFlag(arg string) (name, value string, inline bool) {
	if len(arg) > 2 && arg[:2] == "--" {
		for i := 2; i < len(arg); i++ {
			if arg[i] == '=' {
				return arg[:i], arg[i+1:], true
			}
		}
	}
	return arg, "", false
}
