package room

import (
	"time"

	"kierki-server/pkg/netio"
	"kierki-server/pkg/seat"
	"kierki-server/pkg/table"
	"kierki-server/pkg/wire"
)

// admitNewConnection places a freshly accepted socket into the candidate
// table, or closes it immediately if the table is full.
func (d *Dealer) admitNewConnection(conn *netio.Conn) {
	cand, ok := d.lobby.AddCandidate(conn, time.Now())
	if !ok {
		conn.Unbind()
		return
	}

	go watchCandidate(cand, d.events)
}

func (d *Dealer) handleCandidateFrame(c *table.Candidate, frame []byte) {
	if c.State == table.Rejecting {
		return
	}

	msg, ok := wire.Parse(frame)
	if !ok || msg.Kind != wire.KindIAM {
		d.disconnectCandidate(c)
		return
	}

	requested := msg.IAM.Seat
	if d.lobby.Player(requested).Bound() {
		c.Conn.Enqueue(wire.Render(wire.Message{
			Kind: wire.KindBusy,
			Busy: wire.BusyPayload{Seats: d.lobby.OccupiedSeats()},
		}))
		d.log.WithField("candidate", c.CorrelationID).WithField("seat", requested).Debug("rejecting candidate, seat already bound")
		d.lobby.Reject(c)
		return
	}

	d.seatCandidate(c, requested)
}

func (d *Dealer) handleCandidateErr(c *table.Candidate) {
	d.lobby.RemoveCandidate(c)
}

func (d *Dealer) disconnectCandidate(c *table.Candidate) {
	c.Conn.Unbind()
	d.lobby.RemoveCandidate(c)
}

func (d *Dealer) seatCandidate(c *table.Candidate, s seat.Seat) {
	d.recordReseat(s, time.Now())
	d.log.WithField("candidate", c.CorrelationID).WithField("seat", s).Info("seating candidate")

	p := d.lobby.Seat(c, s)
	go watchSeat(s, p.Conn, d.events)

	if d.gs != nil {
		d.replayHistory(s, p)
		return
	}

	if d.lobby.AllSeated() {
		d.advanceUntilWaiting()
	}
}

// replayHistory sends a reseated player the DEAL for their original hand
// (not their current residual hand) followed by every completed trick so
// far this deal.
func (d *Dealer) replayHistory(s seat.Seat, p *table.Player) {
	p.Conn.Enqueue(wire.Render(d.dealMessageFor(s)))

	for _, taken := range d.gs.History {
		msg := wire.Message{Kind: wire.KindTaken, Taken: wire.TakenPayload{
			TrickNumber: taken.TrickNumber,
			Cards:       taken.Cards,
			Winner:      taken.Winner,
		}}
		p.Conn.Enqueue(wire.Render(msg))
	}
}

func (d *Dealer) recordReseat(s seat.Seat, now time.Time) {
	window := append(d.reseatHistory[s], now)

	cutoff := now.Add(-reseatChurnWindow)
	kept := window[:0]
	for _, t := range window {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}

	d.reseatHistory[s] = kept

	if len(kept) > reseatChurnThreshold {
		d.log.WithField("seat", s).WithField("reseats_in_window", len(kept)).Warn("seat reseated unusually often; accepting anyway")
	}
}

// handleSeatFrame handles a frame arriving while the engine is waiting on
// a play: a frame from a seat other than CurrentPlayer gets WRONG for a
// TRICK or a disconnect for anything else; a frame from CurrentPlayer is
// validated and, if legal, applied.
func (d *Dealer) handleSeatFrame(s seat.Seat, conn *netio.Conn, frame []byte) {
	p := d.lobby.Player(s)
	if p.Conn != conn {
		return // stale event from a connection a reseat has superseded
	}

	if d.state != stateAwaitPlay || d.gs == nil {
		return
	}

	msg, ok := wire.Parse(frame)

	if s != d.gs.CurrentPlayer {
		if ok && msg.Kind == wire.KindTrick {
			d.sendTo(s, wire.Message{Kind: wire.KindWrong, Wrong: wire.WrongPayload{TrickNumber: d.gs.TrickNumber}})
			return
		}

		d.disconnectSeat(s)
		return
	}

	if !ok || msg.Kind != wire.KindTrick {
		d.disconnectSeat(s)
		return
	}

	if msg.Trick.TrickNumber != d.gs.TrickNumber || len(msg.Trick.Cards) != 1 {
		d.sendTo(s, wire.Message{Kind: wire.KindWrong, Wrong: wire.WrongPayload{TrickNumber: d.gs.TrickNumber}})
		return
	}

	card := msg.Trick.Cards[0]
	leadSuit, hasLead := d.gs.LeadingSuit()
	if err := table.Legal(p.Stats.Hand, card, leadSuit, !hasLead); err != nil {
		d.sendTo(s, wire.Message{Kind: wire.KindWrong, Wrong: wire.WrongPayload{TrickNumber: d.gs.TrickNumber}})
		return
	}

	d.state = d.applyPlay(card)
	d.advanceUntilWaiting()
}

func (d *Dealer) handleSeatErr(s seat.Seat, conn *netio.Conn) {
	p := d.lobby.Player(s)
	if p.Conn != conn {
		return
	}

	d.disconnectSeat(s)
}

func (d *Dealer) disconnectSeat(s seat.Seat) {
	p := d.lobby.Player(s)
	if p.Conn != nil {
		p.Conn.Unbind()
	}

	d.lobby.Unseat(s)
}

// handleTick drives everything that is time-based rather than
// event-based: candidate IAM deadlines, draining rejected candidates, and
// trick-request retransmission.
func (d *Dealer) handleTick(now time.Time) {
	for _, c := range d.lobby.ExpiredAwaitingIAM(now) {
		d.disconnectCandidate(c)
	}

	for _, c := range d.lobby.Candidates() {
		if c.State == table.Rejecting && !c.Conn.Pending() {
			d.disconnectCandidate(c)
		}
	}

	if d.state != stateAwaitPlay || d.gs == nil {
		return
	}

	p := d.lobby.Player(d.gs.CurrentPlayer)
	if now.Sub(p.LastRequestAt) <= d.timeout {
		return
	}

	d.retransmitCount[d.gs.CurrentPlayer]++
	if d.retransmitCount[d.gs.CurrentPlayer]%retransmitWarnEvery == 0 {
		d.log.WithField("seat", d.gs.CurrentPlayer).
			WithField("retransmits", d.retransmitCount[d.gs.CurrentPlayer]).
			Warn("retransmitting trick request; player has not responded")
	}

	d.state = stateSendTrickRequest
	d.advanceUntilWaiting()
}
