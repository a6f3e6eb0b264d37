package cli

import (
	"errors"
	"fmt"
	"strings"
)

type Command string

const (
	CommandToggle  Command = "toggle"
	CommandOn      Command = "on"
	CommandOff     Command = "off"
	CommandStatus  Command = "status"
	CommandDoctor  Command = "doctor"
	CommandVersion Command = "version"
	CommandHelp    Command = "help"
)

var validCommands = map[Command]struct{}{
	CommandToggle:  {},
	CommandOn:      {},
	CommandOff:     {},
	CommandStatus:  {},
	CommandDoctor:  {},
	CommandVersion: {},
	CommandHelp:    {},
}

type Parsed struct {
	Command    Command
	ConfigPath string
	Output     string
	ShowHelp   bool
}

// Parse reads flags and at most one trailing command; no command means toggle.
func Parse(args []string) (Parsed, error) {
	parsed := Parsed{Command: CommandToggle}

	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch arg {
		case "-h", "--help":
			parsed.ShowHelp = true
			parsed.Command = CommandHelp
		case "--version":
			parsed.ShowHelp = false
			parsed.Command = CommandVersion
		case "--config":
			i++
			if i >= len(args) {
				return Parsed{}, errors.New("--config requires a path")
			}
			parsed.ConfigPath = args[i]
		case "-o", "--output":
			i++
			if i >= len(args) || strings.TrimSpace(args[i]) == "" {
				return Parsed{}, fmt.Errorf("%s requires an output name", arg)
			}
			parsed.Output = strings.TrimSpace(args[i])
		default:
			if strings.HasPrefix(arg, "-") {
				return Parsed{}, fmt.Errorf("unknown flag: %s", arg)
			}

			cmd := Command(arg)
			if _, ok := validCommands[cmd]; !ok {
				return Parsed{}, fmt.Errorf("unknown command: %s", arg)
			}

			parsed.Command = cmd
			parsed.ShowHelp = cmd == CommandHelp
			if i != len(args)-1 {
				return Parsed{}, fmt.Errorf("unexpected arguments after command %q", arg)
			}
		}
	}

	return parsed, nil
}

func HelpText(binaryName string) string {
	return fmt.Sprintf(`Usage:
  %[1]s [--config PATH] [--output NAME] [command]

Commands:
  toggle    Turn the output off when it is on, on when it is off (default)
  on        Turn the output on
  off       Turn the output off
  status    Print the output's current power state
  doctor    Run configuration and environment checks
  version   Print version information
  help      Show this help

Flags:
  --config PATH       Config file path (default: $XDG_CONFIG_HOME/niri-output-toggle/config.toml)
  -o, --output NAME   Output to control (default: config "output", else HDMI-A-1)
  -h, --help          Show help
  --version           Show version

Environment:
  NIRI_SOCKET         niri control socket (required)
`, binaryName)
}
