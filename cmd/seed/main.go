// Seed inserts development fixtures: user profiles for every role, a few
// santri and a small cash book. Idempotent via ON CONFLICT DO NOTHING.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/pondokdigital/pesantren-api/internal/config"
)

type seedProfile struct {
	userID     string
	nama       string
	roles      []string
	activeRole string
}

func main() {
	var (
		configPath = flag.String("config", "configs/config.yaml", "path to YAML config")
		envFile    = flag.String("env-file", ".env", "path to env file")
	)
	flag.Parse()

	_ = godotenv.Load(*envFile)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config load: %v", err)
	}
	if cfg.Storage.DSN == "" {
		log.Fatal("seed requires a database DSN")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.Storage.DSN)
	if err != nil {
		log.Fatalf("pgxpool: %v", err)
	}
	defer pool.Close()

	profiles := []seedProfile{
		{uuid.NewString(), "Administrator Pondok", []string{"admin"}, "admin"},
		{uuid.NewString(), "Ustadz Ahmad Fauzi", []string{"guru"}, "guru"},
		{uuid.NewString(), "Ibu Siti Bendahara", []string{"bendahara"}, "bendahara"},
		{uuid.NewString(), "Bapak Wali Santri", []string{"wali"}, "wali"},
		{uuid.NewString(), "KH. Pengasuh Pondok", []string{"pengasuh"}, "pengasuh"},
		// multi-role account for exercising the role switcher
		{uuid.NewString(), "Hj. Aminah", []string{"admin", "bendahara"}, "admin"},
	}
	for _, p := range profiles {
		if _, err := pool.Exec(ctx, `
			INSERT INTO user_profiles (user_id, nama, roles, active_role)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (user_id) DO NOTHING`,
			p.userID, p.nama, p.roles, p.activeRole,
		); err != nil {
			log.Fatalf("seed profile %s: %v", p.nama, err)
		}
	}
	log.Printf("seeded %d user profiles", len(profiles))

	santri := []struct {
		nis, nama, kelas, halaqoh string
	}{
		{"2024001", "Hasan Abdullah", "1A", "Al-Fatih"},
		{"2024002", "Umar Faruq", "1A", "Al-Fatih"},
		{"2024003", "Bilal Ramadhan", "2B", "An-Nur"},
	}
	for _, s := range santri {
		if _, err := pool.Exec(ctx, `
			INSERT INTO santri (id, nis, nama, kelas, halaqoh)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (nis) DO NOTHING`,
			uuid.NewString(), s.nis, s.nama, s.kelas, s.halaqoh,
		); err != nil {
			log.Fatalf("seed santri %s: %v", s.nis, err)
		}
	}
	log.Printf("seeded %d santri", len(santri))

	kas := []struct {
		jenis      string
		jumlah     int64
		keterangan string
	}{
		{"pemasukan", 15_000_000, "SPP Agustus"},
		{"pemasukan", 5_000_000, "Donasi pembangunan"},
		{"pengeluaran", 7_500_000, "Gaji pengajar"},
		{"pengeluaran", 2_000_000, "Konsumsi dapur"},
	}
	for _, k := range kas {
		if _, err := pool.Exec(ctx, `
			INSERT INTO kas_transaksi (id, jenis, jumlah, keterangan)
			VALUES ($1, $2, $3, $4)`,
			uuid.NewString(), k.jenis, k.jumlah, k.keterangan,
		); err != nil {
			log.Fatalf("seed kas: %v", err)
		}
	}
	log.Printf("seeded %d kas transactions", len(kas))
}
