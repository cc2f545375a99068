package telegram

import "strings"

// Command is a bot command recognized in chat.
type Command string

const (
	CmdOpenMatches Command = "jogos"
	CmdMyBets      Command = "meus"
	CmdHelp        Command = "ajuda"
	CmdRules       Command = "regras"
	CmdSetupGroup  Command = "setupgrupo"
)

var commandAliases = map[string]Command{
	"jogos":      CmdOpenMatches,
	"meus":       CmdMyBets,
	"ajuda":      CmdHelp,
	"help":       CmdHelp,
	"comandos":   CmdHelp,
	"start":      CmdHelp,
	"regras":     CmdRules,
	"info":       CmdRules,
	"setupgrupo": CmdSetupGroup,
}

// ParseCommand recognizes "/cmd", "/cmd@botname" and "!cmd" on the first
// word of text. Unknown commands are not commands, so they reach the bet
// parser like any other text.
func ParseCommand(text string) (Command, bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return "", false
	}
	word := fields[0]
	if len(word) < 2 || (word[0] != '/' && word[0] != '!') {
		return "", false
	}
	word = word[1:]
	if at := strings.IndexByte(word, '@'); at >= 0 {
		word = word[:at]
	}
	cmd, ok := commandAliases[strings.ToLower(word)]
	return cmd, ok
}
