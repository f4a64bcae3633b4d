// seed_equipment genera el seed SQL del catálogo de stock de EPP a partir del CSV exportado
// de la hoja de cálculo de almacén y, con --apply, lo carga directamente en la base.
//
// Uso: go run ./cmd/seed_equipment --file inventario_epp.csv [--encoding auto] [--out seed.sql] [--apply]
// Por defecto escribe internal/infrastructure/postgres/seeds/equipment_stock.sql.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"

	"github.com/jhoicas/entregas-epp/internal/infrastructure/catalog"
	"github.com/jhoicas/entregas-epp/internal/infrastructure/postgres"
	"github.com/jhoicas/entregas-epp/pkg/config"
	"github.com/jhoicas/entregas-epp/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		filePath string
		encoding string
		outPath  string
		apply    bool
	)
	flagSet := pflag.NewFlagSet("seed_equipment", pflag.ContinueOnError)
	flagSet.StringVarP(&filePath, "file", "f", "inventario_epp.csv", "CSV del catálogo de stock")
	flagSet.StringVar(&encoding, "encoding", catalog.EncodingAuto, "auto | utf-8 | iso-8859-1 | windows-1252")
	flagSet.StringVarP(&outPath, "out", "o", "", "archivo SQL de salida (vacío = ruta por defecto del módulo)")
	flagSet.BoolVar(&apply, "apply", false, "cargar el catálogo en la base configurada (DATABASE_URL / DB_*)")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("abrir CSV: %w", err)
	}
	defer f.Close()

	stocks, err := catalog.Load(f, encoding)
	if err != nil {
		return err
	}

	if outPath == "" {
		outPath = filepath.Join(findModuleRoot(), "internal", "infrastructure", "postgres", "seeds", "equipment_stock.sql")
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("crear directorio: %w", err)
	}
	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("crear archivo: %w", err)
	}
	if err := catalog.WriteSQL(out, stocks); err != nil {
		out.Close()
		return fmt.Errorf("escribir SQL: %w", err)
	}
	if err := out.Close(); err != nil {
		return err
	}
	fmt.Printf("Generado %s: %d equipos\n", outPath, len(stocks))

	if !apply {
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed_equipment"})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer pool.Close()
	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		return err
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repo := postgres.NewEquipmentStockRepository(tx)
	for _, st := range stocks {
		if err := repo.Upsert(ctx, st); err != nil {
			return fmt.Errorf("equipo %s: %w", st.ID, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	log.Info().Int("equipment", len(stocks)).Msg("catálogo cargado")
	return nil
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
