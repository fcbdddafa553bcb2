// nusense-host talks to the NUSense firmware over its virtual serial port:
// echo round trips, Dynamixel CRC checks and a passive monitor for the
// firmware's diagnostic output.
package main

import (
	"bytes"
	"encoding/hex"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"nusense/acm"
	"nusense/host/serial"
	"nusense/protocol"
)

var (
	device  string
	baud    int
	verbose bool
)

func main() {
	root := &cobra.Command{
		Use:   "nusense-host",
		Short: "Host-side tool for the NUSense robotics I/O front-end",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(log.DebugLevel)
			}
		},
	}

	root.PersistentFlags().StringVar(&device, "device", "/dev/ttyACM0", "serial device path")
	root.PersistentFlags().IntVar(&baud, "baud", 115200, "baud rate (ignored for USB CDC)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug output")

	root.AddCommand(echoCmd(), crcCmd(), pingCmd(), monitorCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func openPort() serial.Port {
	cfg := serial.DefaultConfig(device)
	cfg.Baud = baud

	port, err := serial.Open(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to open serial port")
	}
	return port
}

func echoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "echo [message]",
		Short: "Send a packet to the echo application and verify the round trip",
		Run: func(cmd *cobra.Command, args []string) {
			payload := []byte("nusense echo test")
			if len(args) > 0 {
				payload = []byte(strings.Join(args, " "))
			}
			if len(payload) > acm.MaxPacketSize {
				log.Fatalf("payload exceeds the %d byte packet limit", acm.MaxPacketSize)
			}

			port := openPort()
			defer port.Close()

			if _, err := port.Write(payload); err != nil {
				log.WithError(err).Fatal("write failed")
			}
			log.WithField("bytes", len(payload)).Debug("packet sent")

			buf := make([]byte, acm.MaxPacketSize)
			n, err := port.Read(buf)
			if err != nil {
				log.WithError(err).Fatal("read failed")
			}

			if bytes.Equal(buf[:n], payload) {
				log.WithField("bytes", n).Info("echo round trip OK")
			} else {
				log.WithFields(log.Fields{
					"sent":     hex.EncodeToString(payload),
					"received": hex.EncodeToString(buf[:n]),
				}).Fatal("echo mismatch")
			}
		},
	}
}

func crcCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "crc <hex bytes>",
		Short: "Compute the Dynamixel 2.0 CRC for a hex packet body",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			data, err := hex.DecodeString(strings.ReplaceAll(args[0], " ", ""))
			if err != nil {
				log.WithError(err).Fatal("invalid hex input")
			}

			table := protocol.CRC16(data)
			bitwise := protocol.CRC16Bitwise(data)
			if table != bitwise {
				// The two reference implementations disagreeing means the
				// tool build is broken, not the input
				log.Fatalf("reference CRC mismatch: table %04X, bitwise %04X", table, bitwise)
			}

			crc := protocol.CRCBytes(table)
			log.WithFields(log.Fields{
				"crc_l":  hex.EncodeToString(crc[:1]),
				"crc_h":  hex.EncodeToString(crc[1:]),
				"packet": hex.EncodeToString(protocol.AppendCRC(data)),
			}).Info("CRC computed")
		},
	}
}

func pingCmd() *cobra.Command {
	var id uint8
	cmd := &cobra.Command{
		Use:   "ping",
		Short: "Send a Dynamixel ping instruction packet through the echo path",
		Run: func(cmd *cobra.Command, args []string) {
			packet := protocol.BuildPacket(id, protocol.InstPing, nil)
			log.WithField("packet", hex.EncodeToString(packet)).Debug("built ping")

			port := openPort()
			defer port.Close()

			if _, err := port.Write(packet); err != nil {
				log.WithError(err).Fatal("write failed")
			}

			buf := make([]byte, acm.MaxPacketSize)
			n, err := port.Read(buf)
			if err != nil {
				log.WithError(err).Fatal("read failed")
			}

			if !protocol.VerifyCRC(buf[:n]) {
				log.WithField("received", hex.EncodeToString(buf[:n])).
					Fatal("response failed CRC verification")
			}
			log.WithField("received", hex.EncodeToString(buf[:n])).Info("ping round trip OK")
		},
	}
	cmd.Flags().Uint8Var(&id, "id", 1, "Dynamixel device ID")
	return cmd
}

func monitorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "monitor",
		Short: "Stream raw output from the firmware",
		Run: func(cmd *cobra.Command, args []string) {
			port := openPort()
			defer port.Close()

			log.WithField("device", device).Info("monitoring, Ctrl-C to stop")
			buf := make([]byte, 4096)
			for {
				n, err := port.Read(buf)
				if err != nil {
					log.WithError(err).Fatal("read failed")
				}
				if n > 0 {
					os.Stdout.Write(buf[:n])
				}
			}
		},
	}
}
