// Package replies renders the bot's chat messages. All texts are Portuguese
// and use Telegram's legacy Markdown (*bold*, _italic_).
package replies

import (
	"fmt"
	"strings"
	"time"

	"github.com/gustavomchagas/chuta/internal/bolao/reconciler"
	"github.com/gustavomchagas/chuta/internal/bolao/rounds"
	"github.com/gustavomchagas/chuta/internal/pkg/models"
)

// DisplayName disambiguates players sharing a name with the last three
// characters of their handle.
func DisplayName(p *models.Player, sameName int) string {
	if p == nil {
		return ""
	}
	if sameName <= 1 || !p.HasHandle() {
		return p.Name
	}
	h := []rune(p.Handle)
	if len(h) > 3 {
		h = h[len(h)-3:]
	}
	return fmt.Sprintf("%s (%s)", p.Name, string(h))
}

// BetConfirmation summarizes a reconciled submission. It returns "" when
// there is nothing to report.
func BetConfirmation(displayName string, res reconciler.Result) string {
	if res.Empty() {
		return ""
	}

	var sections []string
	if len(res.Accepted) > 0 {
		lines := make([]string, len(res.Accepted))
		for i, a := range res.Accepted {
			c := a.Candidate
			lines[i] = fmt.Sprintf("%d) %s %dx%d %s", c.MatchNumber, c.HomeTeam, a.Bet.HomeScore, a.Bet.AwayScore, c.AwayTeam)
		}
		sections = append(sections, fmt.Sprintf("✅ *Palpites de %s registrados!*\n\n%s\n\n⚠️ *ATENÇÃO: Palpites não podem ser alterados!*",
			displayName, strings.Join(lines, "\n")))
	}

	if len(res.AlreadyExists) > 0 {
		lines := make([]string, len(res.AlreadyExists))
		for i, e := range res.AlreadyExists {
			c := e.Candidate
			lines[i] = fmt.Sprintf("%d) %s x %s (já palpitado: %s)", c.MatchNumber, c.HomeTeam, c.AwayTeam, e.Existing.Score())
		}
		sections = append(sections, "🚫 *Palpites já registrados (não alterados):*\n"+
			strings.Join(lines, "\n")+
			"\n\n_Palpites são definitivos e não podem ser modificados._")
	}

	if len(res.Rejected) > 0 {
		lines := make([]string, len(res.Rejected))
		for i, r := range res.Rejected {
			lines[i] = fmt.Sprintf("%s x %s %s!", r.Candidate.HomeTeam, r.Candidate.AwayTeam, r.Reason)
		}
		sections = append(sections, "⚠️ *Não registrados:*\n"+strings.Join(lines, "\n"))
	}

	msg := strings.Join(sections, "\n\n")
	if len(res.Suggestions) > 0 {
		msg += "\n\n💡 " + strings.Join(res.Suggestions, "\n")
	}
	return msg
}

var weekdays = [...]string{"Domingo", "Segunda-feira", "Terça-feira", "Quarta-feira", "Quinta-feira", "Sexta-feira", "Sábado"}

// NumberEmoji writes n with keycap digits, e.g. 12 -> 1️⃣2️⃣.
func NumberEmoji(n int) string {
	var b strings.Builder
	for _, d := range fmt.Sprint(n) {
		b.WriteRune(d)
		b.WriteString("\ufe0f\u20e3")
	}
	return b.String()
}

// OpenMatches lists the open matches of w grouped by day in loc.
func OpenMatches(w rounds.Window, loc *time.Location) string {
	if w.Empty() {
		if w.Round > 0 {
			return fmt.Sprintf("⏰ Nenhum jogo da rodada %d está aberto para palpites no momento.", w.Round)
		}
		return "📭 Não há jogos agendados no momento."
	}
	if loc == nil {
		loc = time.UTC
	}

	var b strings.Builder
	fmt.Fprintf(&b, "⚽ *RODADA %d*\n\n", w.Round)

	var day string
	for _, m := range w.Open {
		start := m.StartTime.In(loc)
		if key := start.Format("2006-01-02"); key != day {
			if day != "" {
				b.WriteString("\n")
			}
			day = key
			fmt.Fprintf(&b, "📅 *%s, %s*\n", weekdays[start.Weekday()], start.Format("02/01"))
		}
		fmt.Fprintf(&b, "%s %s x %s (%s)\n", NumberEmoji(m.Number), m.HomeTeam, m.AwayTeam, start.Format("15h04"))
	}

	if len(w.Postponed) > 0 {
		b.WriteString("\n🔁 *Fora da janela da rodada:*\n")
		for _, m := range w.Postponed {
			fmt.Fprintf(&b, "• %s x %s (%s)\n", m.HomeTeam, m.AwayTeam, m.StartTime.In(loc).Format("02/01 15h04"))
		}
	}

	b.WriteString("\n---\n📝 *Como palpitar:*\nEnvie todos os palpites de uma vez só!")
	return b.String()
}

// CopyList is a plain list of the open matches meant to be copied, filled in
// and sent back.
func CopyList(w rounds.Window) string {
	if w.Empty() {
		return ""
	}
	var b strings.Builder
	for _, m := range w.Open {
		fmt.Fprintf(&b, "%s x %s\n", m.HomeTeam, m.AwayTeam)
	}
	b.WriteString("\n💡 _Copie, altere os placares e envie!_")
	return b.String()
}

// PlayerBet pairs a stored bet with its match.
type PlayerBet struct {
	Match models.Match
	Bet   models.Bet
}

// PlayerBets lists a player's bets. p is nil for senders never seen before.
func PlayerBets(p *models.Player, displayName string, bets []PlayerBet) string {
	if p == nil {
		return "❓ Você ainda não fez nenhum palpite!"
	}
	if len(bets) == 0 {
		return "📭 Você ainda não tem palpites registrados."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📝 *Seus últimos palpites, %s:*\n\n", displayName)
	for _, pb := range bets {
		points := ""
		if pb.Bet.Points != nil {
			points = fmt.Sprintf(" → %dpts", *pb.Bet.Points)
		}
		fmt.Fprintf(&b, "• %s %s %s%s\n", pb.Match.HomeTeam, pb.Bet.Score(), pb.Match.AwayTeam, points)
	}
	return strings.TrimRight(b.String(), "\n")
}

const Help = "🤖 *COMANDOS DO CHUTAÍ*\n\n" +
	"*📋 Palpites e Jogos:*\n" +
	"*/jogos* - Ver jogos abertos da rodada\n" +
	"*/meus* - Ver seus palpites\n" +
	"*/regras* - Regras do bolão\n" +
	"*/ajuda* - Esta mensagem\n\n" +
	"*📝 Para palpitar:*\n" +
	"Envie todos os palpites de uma vez!\n" +
	"Ex: `Flamengo 2x1 Vasco`\n\n" +
	"*👥 Palpitar em nome de outra pessoa:*\n" +
	"NOME DA PESSOA\n" +
	"Flamengo 2x1 Vasco"

const Rules = "📋 *REGRAS DO BOLÃO*\n\n" +
	"🚫 *Palpites IMUTÁVEIS:*\n" +
	"• Uma vez enviado, o palpite *NÃO PODE* ser alterado\n" +
	"• Tentativas de enviar novamente serão rejeitadas\n\n" +
	"⏰ *Prazo:*\n" +
	"• Palpites só valem se enviados *ANTES* do jogo começar\n\n" +
	"👥 *Palpitar por outra pessoa:*\n" +
	"• Digite o NOME na primeira linha, depois os palpites\n" +
	"• Maiúsculas/minúsculas são ignoradas (NEI = Nei = nei)\n\n" +
	"📝 *Formatos aceitos:*\n" +
	"1) 2x1\n" +
	"Flamengo 2x1 Vasco\n" +
	"1) Flamengo 2x1\n" +
	"2x1 (um placar por jogo, na ordem da lista)\n\n" +
	"💡 Se for mais fácil, você pode misturar os formatos!"

const (
	GroupConfigured = "✅ Grupo configurado! A partir de agora os palpites deste grupo serão registrados."
	GroupOnly       = "⚠️ Este comando só funciona dentro de um grupo."
	InternalError   = "⚠️ Não consegui registrar seus palpites agora. Tente novamente em instantes."
)
