// Command kierki-klient is the reference client: it connects to a server,
// claims a seat, and either plays automatically or multiplexes stdin
// commands (cards, tricks, !<card>) against the server's messages.
package main

import (
	"bufio"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"kierki-server/pkg/deck"
	"kierki-server/pkg/netio"
	"kierki-server/pkg/seat"
	"kierki-server/pkg/table"
	"kierki-server/pkg/wire"
)

type options struct {
	host      string
	port      int
	ipv4      bool
	ipv6      bool
	seatNorth bool
	seatEast  bool
	seatSouth bool
	seatWest  bool
	automatic bool
}

func main() {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "kierki-klient",
		Short: "Reference client for the Kierki protocol",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.host, "host", "h", "", "server host (required)")
	cmd.Flags().IntVarP(&opts.port, "port", "p", 0, "server port (required)")
	cmd.Flags().BoolVarP(&opts.ipv4, "ipv4", "4", false, "force IPv4")
	cmd.Flags().BoolVarP(&opts.ipv6, "ipv6", "6", false, "force IPv6")
	cmd.Flags().BoolVarP(&opts.seatNorth, "north", "N", false, "claim seat North")
	cmd.Flags().BoolVarP(&opts.seatEast, "east", "E", false, "claim seat East")
	cmd.Flags().BoolVarP(&opts.seatSouth, "south", "S", false, "claim seat South")
	cmd.Flags().BoolVarP(&opts.seatWest, "west", "W", false, "claim seat West")
	cmd.Flags().BoolVarP(&opts.automatic, "automatic", "a", false, "play automatically, no stdin commands")

	_ = cmd.MarkFlagRequired("host")
	_ = cmd.MarkFlagRequired("port")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (o *options) seat() (seat.Seat, error) {
	chosen := 0
	s := seat.North

	for _, candidate := range []struct {
		set bool
		s   seat.Seat
	}{
		{o.seatNorth, seat.North},
		{o.seatEast, seat.East},
		{o.seatSouth, seat.South},
		{o.seatWest, seat.West},
	} {
		if candidate.set {
			chosen++
			s = candidate.s
		}
	}

	if chosen != 1 {
		return 0, fmt.Errorf("exactly one of -N/-E/-S/-W is required")
	}

	return s, nil
}

func (o *options) network() string {
	switch {
	case o.ipv4:
		return "tcp4"
	case o.ipv6:
		return "tcp6"
	default:
		return "tcp"
	}
}

func run(o *options) error {
	mySeat, err := o.seat()
	if err != nil {
		return err
	}

	rawConn, err := net.Dial(o.network(), fmt.Sprintf("%s:%d", o.host, o.port))
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}

	c := newClient(mySeat, o.automatic, rawConn)
	return c.run()
}

// client drives the session against one server connection. It reuses
// pkg/netio for the same non-blocking, channel-based read/write contract
// the server uses, rather than hand-rolling a second I/O layer.
type client struct {
	seat      seat.Seat
	automatic bool

	conn       *netio.Conn
	localAddr  string
	remoteAddr string

	hand           deck.Hand
	dealType       deck.DealType
	tricksThisDeal []wire.TakenPayload

	awaitingPlay bool
	pendingTrick wire.TrickPayload

	commands chan string
}

func newClient(s seat.Seat, automatic bool, raw net.Conn) *client {
	return &client{
		seat:       s,
		automatic:  automatic,
		conn:       netio.Bind(raw),
		localAddr:  raw.LocalAddr().String(),
		remoteAddr: raw.RemoteAddr().String(),
		commands:   make(chan string, 16),
	}
}

func (c *client) run() error {
	if !c.automatic {
		go c.readStdin()
	}

	c.send(wire.Message{Kind: wire.KindIAM, IAM: wire.IAMPayload{Seat: c.seat}})

	for {
		select {
		case frame, ok := <-c.conn.Frames():
			if !ok {
				return c.handleDisconnect()
			}

			c.traceIn(frame)
			if err := c.handleFrame(frame); err != nil {
				return err
			}

		case cmdLine, ok := <-c.commands:
			if ok {
				c.handleCommand(cmdLine)
			}
		}
	}
}

func (c *client) handleDisconnect() error {
	if err, ok := <-c.conn.Err(); ok && err != netio.ErrConnClosed {
		fmt.Println("server disconnected unexpectedly")
		os.Exit(1)
	}

	if c.awaitingPlay {
		fmt.Println("server disconnected mid-deal")
		os.Exit(1)
	}

	fmt.Println("game over, server closed the connection")
	os.Exit(0)

	return nil
}

func (c *client) handleFrame(frame []byte) error {
	msg, ok := wire.Parse(frame)
	if !ok {
		fmt.Println("skipped unrecognized message from server")
		return nil
	}

	switch msg.Kind {
	case wire.KindBusy:
		fmt.Printf("seat already taken; occupied seats: %v\n", msg.Busy.Seats)
		os.Exit(1)

	case wire.KindDeal:
		c.hand = deck.Hand(msg.Deal.Cards[:]).Clone()
		c.dealType = msg.Deal.Type
		c.tricksThisDeal = nil
		fmt.Printf("new deal: type=%s leader=%s hand=%s\n", msg.Deal.Type, msg.Deal.FirstSeat, c.hand.Sorted())

	case wire.KindTrick:
		if len(msg.Trick.Cards) <= 3 {
			c.awaitingPlay = true
			c.pendingTrick = msg.Trick
			fmt.Printf("trick %d: cards on table %v; your hand %s\n", msg.Trick.TrickNumber, msg.Trick.Cards, c.hand.Sorted())

			if c.automatic {
				c.play(c.chooseCard())
			}
		}

	case wire.KindWrong:
		fmt.Printf("server rejected trick %d\n", msg.Wrong.TrickNumber)
		if c.automatic {
			c.play(c.chooseCard())
		}

	case wire.KindTaken:
		c.tricksThisDeal = append(c.tricksThisDeal, msg.Taken)
		for _, played := range msg.Taken.Cards {
			c.hand.Remove(played)
		}
		fmt.Printf("trick %d taken by %s: %v\n", msg.Taken.TrickNumber, msg.Taken.Winner, msg.Taken.Cards)

	case wire.KindScore:
		fmt.Printf("deal score: %v\n", msg.Score.Scores)

	case wire.KindTotal:
		fmt.Printf("total score: %v\n", msg.Total.Scores)
	}

	return nil
}

// chooseCard implements the automatic player: the first legal card in hand
// order, following the leading suit when one is established.
func (c *client) chooseCard() deck.Card {
	var leadSuit deck.Suit
	anyLead := len(c.pendingTrick.Cards) == 0
	if !anyLead {
		leadSuit = c.pendingTrick.Cards[0].Suit
	}

	for _, card := range c.hand {
		if table.Legal(c.hand, card, leadSuit, anyLead) == nil {
			return card
		}
	}

	return c.hand[0]
}

func (c *client) play(card deck.Card) {
	c.send(wire.Message{Kind: wire.KindTrick, Trick: wire.TrickPayload{
		TrickNumber: c.pendingTrick.TrickNumber,
		Cards:       []deck.Card{card},
	}})

	c.awaitingPlay = false
}

func (c *client) handleCommand(line string) {
	switch {
	case line == "cards":
		fmt.Println(c.hand.Sorted())

	case line == "tricks":
		for _, t := range c.tricksThisDeal {
			fmt.Printf("%d: %v (won by %s)\n", t.TrickNumber, t.Cards, t.Winner)
		}

	case strings.HasPrefix(line, "!"):
		if !c.awaitingPlay {
			fmt.Println("no outstanding trick request")
			return
		}

		card, ok := deck.CardFromToken(strings.TrimPrefix(line, "!"))
		if !ok {
			fmt.Println("unrecognized card")
			return
		}

		c.play(card)

	default:
		fmt.Println("unknown command (use: cards, tricks, !<card>)")
	}
}

func (c *client) readStdin() {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		c.commands <- strings.TrimSpace(scanner.Text())
	}

	close(c.commands)
}

func (c *client) send(msg wire.Message) {
	frame := wire.Render(msg)
	c.traceOut(frame)
	c.conn.Enqueue(frame)
}

func (c *client) traceIn(frame []byte) {
	c.trace(c.remoteAddr, c.localAddr, frame)
}

func (c *client) traceOut(frame []byte) {
	c.trace(c.localAddr, c.remoteAddr, frame)
}

func (c *client) trace(sender, receiver string, frame []byte) {
	raw := strings.TrimRight(string(frame), "\r\n")
	ts := time.Now().Format("2006-01-02T15:04:05.000")
	fmt.Printf("[%s,%s,%s] %s\n", sender, receiver, ts, raw)
}
