// Package room implements the session state machine (C5) and poll
// supervisor (C6): Dealer drives one game session's deal/trick cycle in a
// single goroutine, fed by a fan-in of every connection's frames and
// errors. One goroutine selects over typed channels fed by per-connection
// watcher goroutines, rather than dispatching from inside the network
// reads themselves.
package room

import (
	"net"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"kierki-server/pkg/dealsfile"
	"kierki-server/pkg/deck"
	"kierki-server/pkg/netio"
	"kierki-server/pkg/seat"
	"kierki-server/pkg/table"
	"kierki-server/pkg/wire"
)

// tickInterval is the run loop's ticker granularity, standing in for
// safePoll's "granular timeout (sub-second, derived from
// timeout_seconds)" — fine enough to catch any timeout_seconds deadline
// promptly without busy-spinning.
const tickInterval = 100 * time.Millisecond

// retransmitWarnEvery logs at Warn level on every Nth consecutive
// retransmission of the same trick request, purely for operational
// visibility. Retransmission is forever by design; this never
// disconnects the player.
const retransmitWarnEvery = 12

// reseatChurnWindow and reseatChurnThreshold implement the observability
// guard: a seat reseated more than reseatChurnThreshold times within
// reseatChurnWindow is logged at Warn, never refused — the protocol
// contract does not change.
const (
	reseatChurnWindow    = 10 * time.Second
	reseatChurnThreshold = 3
)

// Dealer drives one game session: admission of candidates, seating, and
// the deal/trick state machine. All of its state is confined to the
// goroutine running Run — the single logical writer of GameState.
type Dealer struct {
	lobby *table.Lobby
	gs    *table.GameState

	deals     []table.DealConfig
	dealIndex int
	meta      dealsfile.Meta
	timeout   time.Duration

	log *logrus.Entry

	listener net.Listener
	events   chan event
	state    state

	retransmitCount map[seat.Seat]int
	reseatHistory   map[seat.Seat][]time.Time
}

// NewDealer constructs a Dealer bound to listener, ready to run deals in
// order. Run takes ownership of listener and closes it at Shutdown.
func NewDealer(listener net.Listener, deals []table.DealConfig, timeout time.Duration, meta dealsfile.Meta, log *logrus.Entry) *Dealer {
	sessionID := uuid.NewString()

	return &Dealer{
		lobby:           table.NewLobby(timeout),
		deals:           deals,
		timeout:         timeout,
		meta:            meta,
		log:             log.WithField("session", sessionID),
		listener:        listener,
		events:          make(chan event, 256),
		retransmitCount: make(map[seat.Seat]int),
		reseatHistory:   make(map[seat.Seat][]time.Time),
	}
}

// Run accepts connections and drives the session to completion. It
// returns once Shutdown has flushed and closed every seat's connection —
// normal end-of-game.
func (d *Dealer) Run() error {
	go d.acceptLoop()

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case ev := <-d.events:
			d.handleEvent(ev)
		case <-ticker.C:
			d.handleTick(time.Now())
		}

		if d.state == stateShutdown {
			return d.shutdown()
		}
	}
}

func (d *Dealer) acceptLoop() {
	for {
		conn, err := d.listener.Accept()
		if err != nil {
			return
		}

		d.events <- event{kind: eventNewConn, conn: netio.Bind(conn)}
	}
}

func (d *Dealer) handleEvent(ev event) {
	switch ev.kind {
	case eventNewConn:
		d.admitNewConnection(ev.conn)
	case eventCandidateFrame:
		d.handleCandidateFrame(ev.candidate, ev.frame)
	case eventCandidateErr:
		d.handleCandidateErr(ev.candidate)
	case eventSeatFrame:
		d.handleSeatFrame(ev.seat, ev.seatConn, ev.frame)
	case eventSeatErr:
		d.handleSeatErr(ev.seat, ev.seatConn)
	}
}

// step executes one non-blocking transition and returns the next state.
// ApplyPlay is not dispatched here: it needs the played card as an
// argument, so handleSeatFrame calls applyPlay directly and feeds its
// result back into advanceUntilWaiting.
func (d *Dealer) step(s state) state {
	switch s {
	case stateStartDeal:
		d.startDeal()
		return stateStartTrick
	case stateStartTrick:
		d.startTrick()
		return stateSendTrickRequest
	case stateSendTrickRequest:
		d.sendTrickRequest()
		return stateAwaitPlay
	case stateFinalizeDeal:
		return d.finalizeDeal()
	default:
		return s
	}
}

// advanceUntilWaiting runs step() repeatedly without touching the events
// channel in between — the Go encoding of "do not re-poll before the next
// step" idiom for a non-blocking event loop. It stops once the engine
// has nothing left to do but wait for network events, or has shut down.
func (d *Dealer) advanceUntilWaiting() {
	for {
		next := d.step(d.state)
		d.state = next

		if next == stateAwaitPlay || next == stateShutdown {
			return
		}
	}
}

func (d *Dealer) startDeal() {
	cfg := d.deals[d.dealIndex]
	d.gs = &table.GameState{Deal: &cfg, TrickNumber: 1}

	for _, s := range seat.All {
		p := d.lobby.Player(s)
		p.Stats = table.PlayerStats{Hand: cfg.Hands[s].Clone(), DealType: cfg.Type}
	}

	if label := d.meta.Label(d.dealIndex); label != "" {
		d.log.WithField("deal_label", label).Info("starting deal")
	}

	for _, s := range seat.All {
		d.sendTo(s, d.dealMessageFor(s))
	}
}

func (d *Dealer) startTrick() {
	if d.gs.TrickNumber == 1 {
		d.gs.LeaderSeat = d.gs.Deal.FirstSeat
	}

	d.gs.CardsOnTable = nil
	d.gs.CurrentPlayer = d.gs.LeaderSeat
	d.retransmitCount[d.gs.CurrentPlayer] = 0
}

func (d *Dealer) sendTrickRequest() {
	p := d.lobby.Player(d.gs.CurrentPlayer)
	msg := wire.Message{Kind: wire.KindTrick, Trick: wire.TrickPayload{
		TrickNumber: d.gs.TrickNumber,
		Cards:       cardsOf(d.gs.CardsOnTable),
	}}

	d.sendTo(d.gs.CurrentPlayer, msg)
	p.LastRequestAt = time.Now()
}

// applyPlay appends card to the table, removes it from the current
// player's hand, and returns the next state: another SendTrickRequest if
// the trick is still open, StartTrick for the next trick, or
// FinalizeDeal once the 13th trick closes.
func (d *Dealer) applyPlay(card deck.Card) state {
	cp := d.gs.CurrentPlayer
	d.gs.CardsOnTable = append(d.gs.CardsOnTable, table.PlayedCard{Card: card, Seat: cp})
	d.lobby.Player(cp).Stats.Hand.Remove(card)

	if len(d.gs.CardsOnTable) < 4 {
		d.gs.CurrentPlayer = cp.Next()
		d.retransmitCount[d.gs.CurrentPlayer] = 0
		return stateSendTrickRequest
	}

	leadSuit, _ := d.gs.LeadingSuit()
	winner := table.TrickWinner(d.gs.CardsOnTable, leadSuit)
	cards := cardsArray(d.gs.CardsOnTable)

	points := d.gs.Deal.Type.TrickPoints(cards, d.gs.TrickNumber)
	wp := d.lobby.Player(winner)
	wp.Stats.DealPoints += points
	wp.Stats.TotalPoints += points

	taken := table.Taken{TrickNumber: d.gs.TrickNumber, Cards: cards, Winner: winner}
	d.gs.History = append(d.gs.History, taken)
	d.broadcastTaken(taken)
	d.gs.LeaderSeat = winner

	if d.gs.TrickNumber < 13 {
		d.gs.TrickNumber++
		return stateStartTrick
	}

	return stateFinalizeDeal
}

func (d *Dealer) finalizeDeal() state {
	d.sendScores(wire.KindScore, func(p *table.Player) int { return p.Stats.DealPoints })
	d.sendScores(wire.KindTotal, func(p *table.Player) int { return p.Stats.TotalPoints })

	d.dealIndex++
	d.gs = nil

	if d.dealIndex < len(d.deals) {
		return stateStartDeal
	}

	return stateShutdown
}

func (d *Dealer) shutdown() error {
	_ = d.listener.Close()

	for _, s := range seat.All {
		p := d.lobby.Player(s)
		if !p.Bound() {
			continue
		}

		if err := p.Conn.FlushBlocking(2 * time.Second); err != nil {
			d.log.WithField("seat", s).WithError(err).Warn("flush at shutdown did not complete cleanly")
		}

		p.Conn.Unbind()
	}

	d.log.Info("all deals complete, shutting down")

	return nil
}

func (d *Dealer) dealMessageFor(s seat.Seat) wire.Message {
	var cards [13]deck.Card
	copy(cards[:], d.gs.Deal.Hands[s])

	return wire.Message{Kind: wire.KindDeal, Deal: wire.DealPayload{
		Type:      d.gs.Deal.Type,
		FirstSeat: d.gs.Deal.FirstSeat,
		Cards:     cards,
	}}
}

func (d *Dealer) broadcastTaken(taken table.Taken) {
	msg := wire.Message{Kind: wire.KindTaken, Taken: wire.TakenPayload{
		TrickNumber: taken.TrickNumber,
		Cards:       taken.Cards,
		Winner:      taken.Winner,
	}}

	for _, s := range seat.All {
		d.sendTo(s, msg)
	}
}

func (d *Dealer) sendScores(kind wire.Kind, points func(*table.Player) int) {
	var payload wire.ScorePayload
	for i, s := range seat.All {
		payload.Scores[i] = wire.SeatScore{Seat: s, Points: points(d.lobby.Player(s))}
	}

	msg := wire.Message{Kind: kind}
	if kind == wire.KindScore {
		msg.Score = payload
	} else {
		msg.Total = payload
	}

	for _, s := range seat.All {
		d.sendTo(s, msg)
	}
}

func (d *Dealer) sendTo(s seat.Seat, msg wire.Message) {
	p := d.lobby.Player(s)
	if p.Bound() {
		p.Conn.Enqueue(wire.Render(msg))
	}
}

func cardsOf(cards []table.PlayedCard) []deck.Card {
	if len(cards) == 0 {
		return nil
	}

	out := make([]deck.Card, len(cards))
	for i, pc := range cards {
		out[i] = pc.Card
	}

	return out
}

func cardsArray(cards []table.PlayedCard) [4]deck.Card {
	var out [4]deck.Card
	for i, pc := range cards {
		out[i] = pc.Card
	}

	return out
}
