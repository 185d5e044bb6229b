// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"
)

type metadata struct {
	connect     string
	fingerprint string
	verbose     bool
	e           io.Writer
	w           io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	app := newApp(os.Stdout, os.Stderr)

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

func newApp(w io.Writer, e io.Writer) *cli.App {

	app := cli.NewApp()
	app.Name = "bulletin-cli"
	app.Usage = "access a bulletind node"
	app.Version = version
	app.HideVersion = true

	app.Writer = w
	app.ErrWriter = e

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:   "connect, c",
			Value:  "127.0.0.1:2130",
			Usage:  " bulletind host/IP and port, `HOST:PORT`",
			EnvVar: "BULLETIN_CONNECT",
		},
		cli.StringFlag{
			Name:   "fingerprint, f",
			Value:  "",
			Usage:  " expected SHA3-256 certificate `FINGERPRINT` (hex)",
			EnvVar: "BULLETIN_FINGERPRINT",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "post",
			Usage:     "post a bulletin",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				ownerFlag,
				cli.Uint64Flag{
					Name:  "duration, d",
					Value: 0,
					Usage: "*number of blocks to stay listed `COUNT`",
				},
				cli.Uint64Flag{
					Name:  "amount, a",
					Value: 0,
					Usage: "*amount to pay, excess is refunded `AMOUNT`",
				},
				cli.StringFlag{
					Name:  "text, t",
					Value: "",
					Usage: " bulletin `TEXT`",
				},
			},
			Action: runPost,
		},
		{
			Name:      "delete",
			Usage:     "delete a bulletin",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				ownerFlag,
			},
			Action: runDelete,
		},
		{
			Name:      "get",
			Usage:     "get a bulletin by owner or by identifier",
			ArgsUsage: "\n   (+ = select one)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: "+owner `ACCOUNT`",
				},
				cli.Int64Flag{
					Name:  "id, i",
					Value: -1,
					Usage: "+bulletin identifier `ID`",
				},
			},
			Action: runGet,
		},
		{
			Name:      "list",
			Usage:     "list bulletins in identifier order",
			ArgsUsage: " ",
			Flags: []cli.Flag{
				cli.UintFlag{
					Name:  "start, s",
					Value: 0,
					Usage: " first identifier `ID`",
				},
				cli.IntFlag{
					Name:  "count, n",
					Value: 20,
					Usage: " maximum records to output `COUNT`",
				},
			},
			Action: runList,
		},
		{
			Name:      "terminate",
			Usage:     "decommission an empty board, receiving the custody balance",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "requester, r",
					Value: "",
					Usage: "*`ACCOUNT` to receive the balance",
				},
			},
			Action: runTerminate,
		},
		{
			Name:      "operators",
			Usage:     "list the operator roster",
			ArgsUsage: " ",
			Action:    runOperators,
		},
		{
			Name:      "vote",
			Usage:     "vote for an operator",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				voterFlag,
				cli.StringFlag{
					Name:  "operator, p",
					Value: "",
					Usage: "*operator `ACCOUNT`",
				},
			},
			Action: runVote,
		},
		{
			Name:      "voted",
			Usage:     "list the operators a voter has voted for",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				voterFlag,
			},
			Action: runVoted,
		},
		{
			Name:      "balance",
			Usage:     "display the balance of an account",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				accountFlag,
			},
			Action: runBalance,
		},
		{
			Name:      "faucet",
			Usage:     "create test funds in an account",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				accountFlag,
				cli.Uint64Flag{
					Name:  "amount, a",
					Value: 0,
					Usage: "*amount to create `AMOUNT`",
				},
			},
			Action: runFaucet,
		},
		{
			Name:      "info",
			Usage:     "display bulletind status",
			ArgsUsage: " ",
			Action:    runInfo,
		},
		{
			Name:      "version",
			Usage:     "display bulletin-cli version",
			ArgsUsage: " ",
			Action:    runVersion,
		},
	}

	// read the global options
	app.Before = func(c *cli.Context) error {
		c.App.Metadata["config"] = &metadata{
			connect:     c.GlobalString("connect"),
			fingerprint: c.GlobalString("fingerprint"),
			verbose:     c.GlobalBool("verbose"),
			e:           c.App.ErrWriter,
			w:           c.App.Writer,
		}
		return nil
	}

	return app
}

var (
	ownerFlag = cli.StringFlag{
		Name:  "owner, o",
		Value: "",
		Usage: "*owner `ACCOUNT`",
	}
	voterFlag = cli.StringFlag{
		Name:  "voter, o",
		Value: "",
		Usage: "*voter `ACCOUNT`",
	}
	accountFlag = cli.StringFlag{
		Name:  "account, o",
		Value: "",
		Usage: "*`ACCOUNT`",
	}
)
