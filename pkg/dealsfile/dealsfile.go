// Package dealsfile loads the server's sequence of deals from the file
// named by the -f flag: a sequence of 5-line records.
package dealsfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"kierki-server/pkg/deck"
	"kierki-server/pkg/seat"
	"kierki-server/pkg/table"
)

// Load reads path and returns the ordered list of deals it describes.
//
// Grounded in kierki-serwer.cpp's ServerConfig::readDealsFromFile, which
// reads records with a bare std::getline loop and has no special handling
// for a blank line or a short final record other than what getline's
// natural EOF behavior gives it. This port makes that tolerance explicit
// rather than accidental: a blank line where a new record's first line is
// expected, or a file that ends partway through a record's five lines, is
// treated as the natural end of the list, not a parse error.
func Load(path string) ([]table.DealConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dealsfile: %w", err)
	}
	defer f.Close()

	return parse(f)
}

func parse(r io.Reader) ([]table.DealConfig, error) {
	sc := bufio.NewScanner(r)

	var deals []table.DealConfig
	for {
		line1, ok := nextLine(sc)
		if !ok {
			return deals, nil
		}

		if strings.TrimSpace(line1) == "" {
			return deals, nil
		}

		cfg, ok, err := parseRecord(sc, line1)
		if err != nil {
			return nil, err
		}

		if !ok {
			return deals, nil
		}

		deals = append(deals, cfg)
	}
}

func parseRecord(sc *bufio.Scanner, line1 string) (table.DealConfig, bool, error) {
	if len(line1) < 2 {
		return table.DealConfig{}, false, nil
	}

	dt, ok := deck.ParseDealType(line1[0])
	if !ok {
		return table.DealConfig{}, false, fmt.Errorf("dealsfile: invalid deal type digit %q", line1[0])
	}

	firstSeat, ok := seat.Parse(line1[1])
	if !ok {
		return table.DealConfig{}, false, fmt.Errorf("dealsfile: invalid first seat %q", line1[1])
	}

	hands := make(map[seat.Seat]deck.Hand, 4)
	for _, s := range seat.All {
		line, ok := nextLine(sc)
		if !ok {
			// Short final record (EOF mid-record): the natural end of the
			// list, not an error.
			return table.DealConfig{}, false, nil
		}

		cards, err := parseCardRun(line)
		if err != nil {
			return table.DealConfig{}, false, fmt.Errorf("dealsfile: seat %s: %w", s, err)
		}

		if len(cards) != 13 {
			return table.DealConfig{}, false, fmt.Errorf("dealsfile: seat %s: expected 13 cards, got %d", s, len(cards))
		}

		hands[s] = cards
	}

	return table.DealConfig{Type: dt, FirstSeat: firstSeat, Hands: hands}, true, nil
}

func nextLine(sc *bufio.Scanner) (string, bool) {
	if !sc.Scan() {
		return "", false
	}

	return sc.Text(), true
}

func parseCardRun(s string) ([]deck.Card, error) {
	var cards []deck.Card
	for len(s) > 0 {
		if len(s) >= 3 {
			if c, ok := deck.CardFromToken(s[:3]); ok {
				cards = append(cards, c)
				s = s[3:]
				continue
			}
		}

		if len(s) >= 2 {
			if c, ok := deck.CardFromToken(s[:2]); ok {
				cards = append(cards, c)
				s = s[2:]
				continue
			}
		}

		return nil, fmt.Errorf("invalid card token at %q", s)
	}

	return cards, nil
}
