// Command sphincs256 is a thin CLI wrapper around the sphincs256
// package's keygen/sign/verify operations.
package main

import (
	"crypto/rand"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/urfave/cli"

	"github.com/nomasters/sphincs256"
)

func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return ioutil.ReadAll(os.Stdin)
	}
	return ioutil.ReadFile(path)
}

func writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return ioutil.WriteFile(path, data, 0o600)
}

func cmdKeygen(c *cli.Context) error {
	pk, sk, err := sphincs256.GenerateKey(rand.Reader, sphincs256.SPHINCS256)
	if err != nil {
		return cli.NewExitError(err.Error(), 2)
	}
	if err := writeOutput(c.String("out"), sk.Bytes()); err != nil {
		return cli.NewExitError(err.Error(), 2)
	}
	if err := writeOutput(c.String("pub"), pk.Bytes()); err != nil {
		return cli.NewExitError(err.Error(), 2)
	}
	fmt.Fprintln(os.Stderr, "wrote keys")
	return nil
}

func cmdSign(c *cli.Context) error {
	keyBytes, err := readInput(c.String("key"))
	if err != nil {
		return cli.NewExitError(err.Error(), 2)
	}
	sk, err := sphincs256.ParsePrivateKey(sphincs256.SPHINCS256, keyBytes)
	if err != nil {
		return cli.NewExitError(err.Error(), 2)
	}
	message, err := readInput(c.String("in"))
	if err != nil {
		return cli.NewExitError(err.Error(), 2)
	}
	sig, err := sphincs256.SignDetached(sk, message)
	if err != nil {
		return cli.NewExitError(err.Error(), 2)
	}
	if err := writeOutput(c.String("out"), sig); err != nil {
		return cli.NewExitError(err.Error(), 2)
	}
	fmt.Fprintln(os.Stderr, "wrote signature")
	return nil
}

func cmdVerify(c *cli.Context) error {
	pubBytes, err := readInput(c.String("pub"))
	if err != nil {
		return cli.NewExitError(err.Error(), 2)
	}
	pk, err := sphincs256.ParsePublicKey(sphincs256.SPHINCS256, pubBytes)
	if err != nil {
		return cli.NewExitError(err.Error(), 2)
	}
	sig, err := readInput(c.String("sig"))
	if err != nil {
		return cli.NewExitError(err.Error(), 2)
	}
	message, err := readInput(c.String("in"))
	if err != nil {
		return cli.NewExitError(err.Error(), 2)
	}
	if !sphincs256.Verify(pk, message, sig) {
		fmt.Fprintln(os.Stderr, "verification failed")
		return cli.NewExitError("", 1)
	}
	fmt.Fprintln(os.Stderr, "verification succeeded")
	return nil
}

func main() {
	app := cli.NewApp()
	app.Name = "sphincs256"
	app.Usage = "hash-based post-quantum signatures"

	app.Commands = []cli.Command{
		{
			Name:  "keygen",
			Usage: "generate a keypair",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "out", Value: "sphincs.key", Usage: "secret key output path, - for stdout"},
				cli.StringFlag{Name: "pub", Value: "sphincs.pub", Usage: "public key output path, - for stdout"},
			},
			Action: cmdKeygen,
		},
		{
			Name:  "sign",
			Usage: "sign a message",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "in", Value: "-", Usage: "message input path, - for stdin"},
				cli.StringFlag{Name: "key", Usage: "secret key path"},
				cli.StringFlag{Name: "out", Value: "-", Usage: "signature output path, - for stdout"},
			},
			Action: cmdSign,
		},
		{
			Name:  "verify",
			Usage: "verify a signature",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "in", Value: "-", Usage: "message input path, - for stdin"},
				cli.StringFlag{Name: "sig", Usage: "signature path"},
				cli.StringFlag{Name: "pub", Usage: "public key path"},
			},
			Action: cmdVerify,
		},
	}

	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}
