// genhash prints the bcrypt hash for OPERADOR_PASSWORD_HASH.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	app := &cli.App{
		Name:      "genhash",
		Usage:     "Generate the operator password hash",
		ArgsUsage: "<password>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "cost",
				Usage: "bcrypt cost",
				Value: 12,
			},
		},
		Action: func(c *cli.Context) error {
			password := c.Args().First()
			if password == "" {
				return cli.Exit("falta la contraseña", 1)
			}
			h, err := bcrypt.GenerateFromPassword([]byte(password), c.Int("cost"))
			if err != nil {
				return err
			}
			fmt.Println(string(h))
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
