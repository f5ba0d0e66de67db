// seedcatalog loads a JSON backup into one collection, with the same
// validation as PUT /v1/respaldo/:coleccion.
//
//	go run ./cmd/seedcatalog --archivo catalogo.json
//	go run ./cmd/seedcatalog --coleccion gastos --archivo gastos.json
package main

import (
	"context"
	"fmt"
	"os"

	"dxy/internal/infra"
	"dxy/internal/repository"
	"dxy/internal/service"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func main() {
	_ = godotenv.Load()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	app := &cli.App{
		Name:  "seedcatalog",
		Usage: "Replace a collection with the contents of a JSON file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "db-url",
				Usage:    "Database connection string",
				Required: true,
				EnvVars:  []string{"DATABASE_URL"},
			},
			&cli.StringFlag{
				Name:  "coleccion",
				Usage: fmt.Sprintf("one of %v", service.Colecciones),
				Value: service.ColeccionProductos,
			},
			&cli.PathFlag{
				Name:     "archivo",
				Usage:    "JSON array to import",
				Required: true,
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("seedcatalog")
	}
}

func run(c *cli.Context) error {
	raw, err := os.ReadFile(c.Path("archivo"))
	if err != nil {
		return fmt.Errorf("leer archivo: %w", err)
	}

	db, err := infra.NewDatabase(c.String("db-url"))
	if err != nil {
		return fmt.Errorf("conectar a postgres: %w", err)
	}

	svc := service.NewRespaldoService(db,
		repository.NewProductoRepository(db),
		repository.NewVentaDiariaRepository(db),
		repository.NewFacturaCompraRepository(db),
		repository.NewPartnerRepository(db),
		repository.NewGastoRepository(db),
	)

	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}
	n, err := svc.Importar(ctx, c.String("coleccion"), raw)
	if err != nil {
		return err
	}
	log.Info().Str("coleccion", c.String("coleccion")).Int("importados", n).Msg("seed completado")
	return nil
}
