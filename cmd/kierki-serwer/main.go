package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"os"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	"kierki-server/internal/config"
	"kierki-server/pkg/dealsfile"
	"kierki-server/pkg/room"
)

const listenBacklog = 4

func main() {
	setupLogger()

	defaults, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("could not load environment configuration")
	}

	port := flag.Int("p", defaults.Port, "port to listen on; 0 lets the OS choose")
	dealsPath := flag.String("f", defaults.DealsFile, "path to the deals file (required)")
	timeoutSeconds := flag.Int("t", defaultTimeout(defaults.TimeoutSeconds), "seconds to wait for a client response before retransmitting")
	flag.Parse()

	if *dealsPath == "" {
		logrus.Fatal("-f <dealsfile> is required")
	}

	deals, err := dealsfile.Load(*dealsPath)
	if err != nil {
		logrus.WithError(err).WithField("file", *dealsPath).Error("could not read deals file")
		os.Exit(1)
	}

	if len(deals) == 0 {
		logrus.WithField("file", *dealsPath).Error("deals file contains no deals")
		os.Exit(1)
	}

	meta, err := dealsfile.LoadMeta(*dealsPath)
	if err != nil {
		logrus.WithError(err).Warn("could not read deals file metadata sidecar, continuing without labels")
	}

	ln, err := listen(*port)
	if err != nil {
		logrus.WithError(err).Error("could not start listening")
		os.Exit(1)
	}

	log := logrus.WithField("addr", ln.Addr().String())
	log.WithField("deals", len(deals)).Info("listening")

	d := room.NewDealer(ln, deals, time.Duration(*timeoutSeconds)*time.Second, meta, log)
	if err := d.Run(); err != nil {
		log.WithError(err).Error("session ended with an error")
		os.Exit(1)
	}

	log.Info("session complete")
}

func defaultTimeout(envconfigDefault int) int {
	if envconfigDefault == 0 {
		return 5
	}

	return envconfigDefault
}

// listen binds an IPv6 dual-stack socket (accepting IPv4 clients on the
// same listener) with SO_REUSEADDR/SO_REUSEPORT set. Go's
// net.ListenConfig has no portable way to change the backlog from the
// kernel default; listenBacklog documents the intended backlog, but
// is not actually settable through the standard library, so it is not
// used below and nothing silently diverges from the kernel's default.
func listen(port int) (net.Listener, error) {
	lc := net.ListenConfig{
		Control: func(_, _ string, c syscall.RawConn) error {
			var ctrlErr error
			err := c.Control(func(fd uintptr) {
				if err := unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
					ctrlErr = err
					return
				}

				if err := unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEPORT, 1); err != nil {
					ctrlErr = err
					return
				}

				if err := unix.SetsockoptInt(int(fd), unix.IPPROTO_IPV6, unix.IPV6_V6ONLY, 0); err != nil {
					ctrlErr = err
					return
				}
			})
			if err != nil {
				return err
			}

			return ctrlErr
		},
	}

	return lc.Listen(context.Background(), "tcp6", fmt.Sprintf(":%d", port))
}

func setupLogger() {
	logrus.SetLevel(logrus.InfoLevel)
}
