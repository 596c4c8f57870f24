package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/xavierca1/assistant-flow-hub/internal/config"
	"github.com/xavierca1/assistant-flow-hub/internal/entity"
	"github.com/xavierca1/assistant-flow-hub/internal/infra/database"
	"github.com/xavierca1/assistant-flow-hub/internal/seed"
	"github.com/xavierca1/assistant-flow-hub/internal/usecase"
)

func main() {
	leads := flag.Int("leads", 25, "quantidade de leads")
	appointments := flag.Int("appointments", 30, "quantidade de agendamentos")
	seedValue := flag.Int64("seed", time.Now().UnixNano(), "seed do gerador")
	flag.Parse()

	godotenv.Load()
	cfg := config.Load()
	loc := cfg.Location()
	entity.SetBusinessLocation(loc)

	ctx := context.Background()

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatalf("❌ Migrations falharam: %v", err)
	}

	db, err := database.NewDBConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Banco indisponível: %v", err)
	}
	defer db.Close()

	leadManager := usecase.NewLeadManager(database.NewLeadRepository(db), nil)
	appointmentManager := usecase.NewAppointmentManager(database.NewAppointmentRepository(db), nil, loc)

	gen := seed.NewGenerator(*seedValue)

	created := 0
	for _, in := range gen.Leads(*leads) {
		if _, err := leadManager.Submit(ctx, in, ""); err != nil {
			log.Printf("⚠️ Lead %s ignorado: %v", in.Email, err)
			continue
		}
		created++
	}
	log.Printf("✅ %d leads criados", created)

	created = 0
	for _, in := range gen.Appointments(*appointments, seed.Today(loc)) {
		if _, err := appointmentManager.Create(ctx, in); err != nil {
			log.Printf("⚠️ Agendamento de %s ignorado: %v", in.Email, err)
			continue
		}
		created++
	}
	log.Printf("✅ %d agendamentos criados", created)
}
