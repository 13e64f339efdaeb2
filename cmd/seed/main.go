package main

import (
	"database/sql"
	"log"
	"time"

	"github.com/gosimple/slug"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/jaswan333/hospital-golang/internal/config"
	"github.com/jaswan333/hospital-golang/internal/database"
	"github.com/jaswan333/hospital-golang/internal/logger"
)

type seedMedicine struct {
	Name              string
	Category          string
	Price             float64
	Stock             int
	Image             string
	Description       string
	Manufacturer      string
	LowStockThreshold int
	UsedFor           string
}

var sampleMedicines = []seedMedicine{
	{
		Name: "Paracetamol 500mg", Category: "Pain Relief", Price: 25, Stock: 150,
		Image:       "https://images.unsplash.com/photo-1471864190281-a93a3070b6de?w=300&h=200&fit=crop",
		Description: "Effective pain relief and fever reducer", Manufacturer: "PharmaCorp",
		LowStockThreshold: 20, UsedFor: "Fever, headache, body pain",
	},
	{
		Name: "Amoxicillin 250mg", Category: "Antibiotic", Price: 45, Stock: 80,
		Image:       "https://images.unsplash.com/photo-1628771065518-0d82f1938462?w=300&h=200&fit=crop",
		Description: "Broad-spectrum antibiotic for bacterial infections", Manufacturer: "MediLife",
		LowStockThreshold: 15, UsedFor: "Bacterial infections, respiratory tract infections",
	},
	{
		Name: "Aspirin 75mg", Category: "Cardiac", Price: 30, Stock: 5,
		Image:       "https://images.unsplash.com/photo-1584308666744-24d5c474f2ae?w=300&h=200&fit=crop",
		Description: "Low-dose aspirin for heart protection", Manufacturer: "CardioMed",
		LowStockThreshold: 10, UsedFor: "Heart protection, blood thinning",
	},
	{
		Name: "Vitamin D3 1000IU", Category: "Vitamins", Price: 120, Stock: 200,
		Image:       "https://images.unsplash.com/photo-1550572017-edd951aa8ca6?w=300&h=200&fit=crop",
		Description: "Essential vitamin D supplement", Manufacturer: "VitaHealth",
		LowStockThreshold: 25, UsedFor: "Bone health, immunity, vitamin D deficiency",
	},
	{
		Name: "Cetirizine 10mg", Category: "Allergy", Price: 45, Stock: 60,
		Image:       "https://images.unsplash.com/photo-1559757148-5c350d0d3c56?w=300&h=200&fit=crop",
		Description: "Antihistamine for allergies", Manufacturer: "AllerCare",
		LowStockThreshold: 15, UsedFor: "Allergies, skin rash, cold symptoms",
	},
	{
		Name: "Omeprazole 20mg", Category: "Digestive", Price: 65, Stock: 40,
		Image:       "https://images.unsplash.com/photo-1631549916768-4119b2e5f926?w=300&h=200&fit=crop",
		Description: "Proton pump inhibitor for acidity", Manufacturer: "GastroCare",
		LowStockThreshold: 10, UsedFor: "Acidity, stomach ulcer, GERD",
	},
	{
		Name: "Ibuprofen 400mg", Category: "Pain Relief", Price: 35, Stock: 120,
		Image:       "https://images.unsplash.com/photo-1471864190281-a93a3070b6de?w=300&h=200&fit=crop",
		Description: "Anti-inflammatory pain reliever", Manufacturer: "PharmaCorp",
		LowStockThreshold: 18, UsedFor: "Inflammation, muscle pain, arthritis",
	},
	{
		Name: "Atorvastatin 20mg", Category: "Cardiac", Price: 180, Stock: 60,
		Image:       "https://images.unsplash.com/photo-1584308666744-24d5c474f2ae?w=300&h=200&fit=crop",
		Description: "Cholesterol-lowering medication", Manufacturer: "CardioMed",
		LowStockThreshold: 15, UsedFor: "High cholesterol, heart disease prevention",
	},
	{
		Name: "Multivitamin Tablets", Category: "Vitamins", Price: 250, Stock: 8,
		Image:       "https://images.unsplash.com/photo-1550572017-edd951aa8ca6?w=300&h=200&fit=crop",
		Description: "Complete daily vitamin supplement", Manufacturer: "VitaHealth",
		LowStockThreshold: 20, UsedFor: "Daily nutrition, vitamin deficiency",
	},
	{
		Name: "Cefixime 200mg", Category: "Antibiotic", Price: 95, Stock: 40,
		Image:       "https://images.unsplash.com/photo-1628771065518-0d82f1938462?w=300&h=200&fit=crop",
		Description: "Third-generation cephalosporin antibiotic", Manufacturer: "MediLife",
		LowStockThreshold: 12, UsedFor: "Severe bacterial infections, UTI",
	},
}

type seedDoctor struct {
	Name           string
	Specialty      string
	Experience     string
	Phone          string
	Email          string
	Qualifications string
}

var sampleDoctors = []seedDoctor{
	{Name: "Dr. Priya Sharma", Specialty: "Cardiology", Experience: "12 years", Phone: "9876543210", Email: "priya.sharma@hospital.local", Qualifications: `["MBBS", "MD", "DM Cardiology"]`},
	{Name: "Dr. Arjun Mehta", Specialty: "General Medicine", Experience: "8 years", Phone: "9876543211", Email: "arjun.mehta@hospital.local", Qualifications: `["MBBS", "MD"]`},
	{Name: "Dr. Kavita Rao", Specialty: "Gynecology", Experience: "15 years", Phone: "9876543212", Email: "kavita.rao@hospital.local", Qualifications: `["MBBS", "MS", "DGO"]`},
	{Name: "Dr. Sanjay Patel", Specialty: "Orthopedics", Experience: "10 years", Phone: "9876543213", Email: "sanjay.patel@hospital.local", Qualifications: `["MBBS", "MS Ortho"]`},
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: Could not find or load .env file. Relying on system environment variables.")
	}

	cfg := config.Load()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	db, err := database.Open(cfg.DBDSN)
	if err != nil {
		logger.L().Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		logger.L().Fatal("failed to run migrations", zap.Error(err))
	}

	inserted := 0
	for _, m := range sampleMedicines {
		// Skip rows that already exist so the seeder can be re-run.
		var existing int64
		err := db.QueryRow("SELECT id FROM medicines WHERE name = ?", m.Name).Scan(&existing)
		if err == nil {
			continue
		}
		if err != sql.ErrNoRows {
			logger.L().Fatal("failed to check existing medicine", zap.String("name", m.Name), zap.Error(err))
		}

		now := time.Now()
		_, err = db.Exec(`
			INSERT INTO medicines (name, slug, category, price, stock, low_stock_threshold,
				image, description, manufacturer, used_for, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			m.Name, slug.Make(m.Name), m.Category, m.Price, m.Stock, m.LowStockThreshold,
			m.Image, m.Description, m.Manufacturer, m.UsedFor, now, now,
		)
		if err != nil {
			logger.L().Fatal("failed to insert medicine", zap.String("name", m.Name), zap.Error(err))
		}
		inserted++
	}
	logger.L().Info("medicines seeded", zap.Int("inserted", inserted), zap.Int("total", len(sampleMedicines)))

	inserted = 0
	for _, d := range sampleDoctors {
		var existing int64
		err := db.QueryRow("SELECT id FROM doctors WHERE email = ?", d.Email).Scan(&existing)
		if err == nil {
			continue
		}
		if err != sql.ErrNoRows {
			logger.L().Fatal("failed to check existing doctor", zap.String("name", d.Name), zap.Error(err))
		}

		now := time.Now()
		_, err = db.Exec(`
			INSERT INTO doctors (name, specialty, experience, status, attendance,
				phone, email, qualifications, created_at, updated_at)
			VALUES (?, ?, ?, 'Available', '95%', ?, ?, ?, ?, ?)`,
			d.Name, d.Specialty, d.Experience, d.Phone, d.Email, d.Qualifications, now, now,
		)
		if err != nil {
			logger.L().Fatal("failed to insert doctor", zap.String("name", d.Name), zap.Error(err))
		}
		inserted++
	}
	logger.L().Info("doctors seeded", zap.Int("inserted", inserted), zap.Int("total", len(sampleDoctors)))
}
