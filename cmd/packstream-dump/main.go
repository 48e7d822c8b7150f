// Command packstream-dump is a small diagnostic CLI over the
// packstream codec and the bolt v1 façade: it hex-decodes a value,
// hex-encodes a handful of literal values for inspection, and prints
// the bytes a façade method would write to an in-memory connection.
package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/boltstream/packstream/bolt"
	"github.com/boltstream/packstream/graph"
	"github.com/boltstream/packstream/logger"
	"github.com/boltstream/packstream/packstream"
	"github.com/boltstream/packstream/packstream/bufchannel"
	"github.com/urfave/cli"
)

func main() {
	app := cli.NewApp()
	app.Name = "packstream-dump"
	app.Usage = "inspect PackStream v1 values and Bolt v1 request messages"
	app.Version = "0.1.0"
	app.Commands = []cli.Command{
		{
			Name:   "decode",
			Usage:  "decode a hex-encoded PackStream value and print its Go representation",
			Action: decodeCommand,
		},
		{
			Name:  "encode",
			Usage: "encode a built-in literal value and print its hex bytes",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "value, v",
					Usage: "one of: null, hello, list123, map-kv",
				},
			},
			Action: encodeCommand,
		},
		{
			Name:  "request",
			Usage: "print the bytes a façade method would write",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "method, m",
					Usage: "one of: init, run, reset",
				},
			},
			Action: requestCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error.Println(nil, err)
		os.Exit(1)
	}
}

func decodeCommand(c *cli.Context) error {
	arg := c.Args().First()
	if arg == "" {
		return fmt.Errorf("usage: packstream-dump decode <hex-bytes>")
	}
	raw, err := hex.DecodeString(strings.ReplaceAll(arg, " ", ""))
	if err != nil {
		return fmt.Errorf("invalid hex: %w", err)
	}

	u := packstream.NewUnpacker()
	u.Hydrator = graph.Hydrator{}
	v, err := u.Unpack(bufchannel.NewFromBytes(raw))
	if err != nil {
		return err
	}
	fmt.Printf("%#v\n", v)
	return nil
}

func encodeCommand(c *cli.Context) error {
	var v packstream.Value
	switch c.String("value") {
	case "null", "":
		v = packstream.Null{}
	case "hello":
		v = packstream.String("hello")
	case "list123":
		v = packstream.List{packstream.Int(1), packstream.Int(2), packstream.Int(3)}
	case "map-kv":
		m := packstream.NewMap()
		m.Set("k", packstream.String("v"))
		v = m
	default:
		return fmt.Errorf("unknown --value %q", c.String("value"))
	}

	p := packstream.NewPacker(true)
	buf := bufchannel.New()
	var encErr error
	p.Pack(v, buf, func(err error) { encErr = err })
	if encErr != nil {
		return encErr
	}
	fmt.Println(strings.ToUpper(hex.EncodeToString(buf.Bytes())))
	return nil
}

// dumpConnection is a bolt.Connection that writes to an in-memory
// buffer and reports flush/fatal events to stdout instead of a socket.
type dumpConnection struct {
	*bufchannel.Buffer
}

func (c *dumpConnection) Cid() int { return 0 }

func (c *dumpConnection) Flush() error {
	fmt.Printf("flush: %s\n", strings.ToUpper(hex.EncodeToString(c.Bytes())))
	c.Reset()
	return nil
}

func (c *dumpConnection) MarkFatal(err error) {
	fmt.Printf("fatal: %v\n", err)
}

type discardObserver struct{}

func (discardObserver) OnNext(packstream.List)     {}
func (discardObserver) OnCompleted(*packstream.Map) {}
func (discardObserver) OnError(err error)          { fmt.Printf("observer error: %v\n", err) }

func requestCommand(c *cli.Context) error {
	facade := bolt.NewFacade(packstream.NewPacker(true))
	conn := &dumpConnection{Buffer: bufchannel.New()}
	obs := discardObserver{}

	switch c.String("method") {
	case "init", "":
		auth := packstream.NewMap()
		auth.Set("scheme", packstream.String("none"))
		return facade.Initialize(conn, "packstream-dump/0.1.0", auth, obs)
	case "run":
		return facade.Run(conn, "RETURN 1", packstream.NewMap(), "", nil, obs)
	case "reset":
		return facade.Reset(conn, obs)
	default:
		return fmt.Errorf("unknown --method %q", c.String("method"))
	}
}
