package wire

import (
	"strconv"
	"strings"
)

// Render encodes msg into its canonical wire bytes, CRLF included. It panics
// if msg carries a Kind the codec does not know, since that can only mean a
// programming error on the server's own send path — never untrusted input.
func Render(msg Message) []byte {
	var b strings.Builder

	switch msg.Kind {
	case KindIAM:
		b.WriteString("IAM")
		b.WriteString(msg.IAM.Seat.String())
	case KindBusy:
		b.WriteString("BUSY")
		for _, s := range msg.Busy.Seats {
			b.WriteString(s.String())
		}
	case KindDeal:
		b.WriteString("DEAL")
		b.WriteString(strconv.Itoa(int(msg.Deal.Type)))
		b.WriteString(msg.Deal.FirstSeat.String())
		for _, c := range msg.Deal.Cards {
			b.WriteString(c.String())
		}
	case KindTrick:
		b.WriteString("TRICK")
		b.WriteString(strconv.Itoa(msg.Trick.TrickNumber))
		if len(msg.Trick.Cards) > 0 {
			b.WriteByte(' ')
			for _, c := range msg.Trick.Cards {
				b.WriteString(c.String())
			}
		}
	case KindWrong:
		b.WriteString("WRONG")
		b.WriteString(strconv.Itoa(msg.Wrong.TrickNumber))
	case KindTaken:
		b.WriteString("TAKEN")
		b.WriteString(strconv.Itoa(msg.Taken.TrickNumber))
		b.WriteByte(' ')
		for _, c := range msg.Taken.Cards {
			b.WriteString(c.String())
		}
		b.WriteString(msg.Taken.Winner.String())
	case KindScore:
		b.WriteString("SCORE")
		writeScores(&b, msg.Score)
	case KindTotal:
		b.WriteString("TOTAL")
		writeScores(&b, msg.Total)
	default:
		panic("wire: Render called with unknown Kind")
	}

	b.WriteString(crlf)

	return []byte(b.String())
}

func writeScores(b *strings.Builder, p ScorePayload) {
	for _, sc := range p.Scores {
		b.WriteString(sc.Seat.String())
		b.WriteString(strconv.Itoa(sc.Points))
	}
}
